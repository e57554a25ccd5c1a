package repository

import (
	"context"
	"reflect"
	"time"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const usersCollection = "users"

// MongoRepository stores each user as one document with addresses and
// orders embedded.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(ctx context.Context, db *mongo.Database) (*MongoRepository, error) {
	coll := db.Collection(usersCollection, options.Collection().SetRegistry(newRegistry()))
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "phone", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "orders.id", Value: 1}}},
	})
	if err != nil {
		return nil, errors.Wrap(err, "create user indexes")
	}
	return &MongoRepository{coll: coll}, nil
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

// newRegistry stores decimals as strings so prices keep their exact value.
func newRegistry() *bsoncodec.Registry {
	reg := bson.NewRegistry()
	reg.RegisterTypeEncoder(decimalType, bsoncodec.ValueEncoderFunc(encodeDecimal))
	reg.RegisterTypeDecoder(decimalType, bsoncodec.ValueDecoderFunc(decodeDecimal))
	return reg
}

func encodeDecimal(_ bsoncodec.EncodeContext, vw bsonrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Type() != decimalType {
		return bsoncodec.ValueEncoderError{Name: "DecimalEncodeValue", Types: []reflect.Type{decimalType}, Received: val}
	}
	return vw.WriteString(val.Interface().(decimal.Decimal).String())
}

func decodeDecimal(_ bsoncodec.DecodeContext, vr bsonrw.ValueReader, val reflect.Value) error {
	if !val.CanSet() || val.Type() != decimalType {
		return bsoncodec.ValueDecoderError{Name: "DecimalDecodeValue", Types: []reflect.Type{decimalType}, Received: val}
	}

	var (
		d   decimal.Decimal
		err error
	)
	switch vr.Type() {
	case bsontype.String:
		var s string
		if s, err = vr.ReadString(); err == nil {
			d, err = decimal.NewFromString(s)
		}
	case bsontype.Decimal128:
		var d128 primitive.Decimal128
		if d128, err = vr.ReadDecimal128(); err == nil {
			d, err = decimal.NewFromString(d128.String())
		}
	case bsontype.Double:
		var f float64
		if f, err = vr.ReadDouble(); err == nil {
			d = decimal.NewFromFloat(f)
		}
	case bsontype.Int32:
		var i int32
		if i, err = vr.ReadInt32(); err == nil {
			d = decimal.NewFromInt(int64(i))
		}
	case bsontype.Int64:
		var i int64
		if i, err = vr.ReadInt64(); err == nil {
			d = decimal.NewFromInt(i)
		}
	case bsontype.Null:
		err = vr.ReadNull()
	default:
		return errors.Errorf("cannot decode %v into a decimal", vr.Type())
	}
	if err != nil {
		return err
	}
	val.Set(reflect.ValueOf(d))
	return nil
}

func mongoDuplicate(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return apperror.Validation("user with this email or phone already exists")
	}
	return err
}

func (r *MongoRepository) Create(ctx context.Context, u *model.User) error {
	doc := *u
	if doc.Addresses == nil {
		doc.Addresses = []model.Address{}
	}
	if doc.Orders == nil {
		doc.Orders = []model.Order{}
	}
	_, err := r.coll.InsertOne(ctx, &doc)
	return mongoDuplicate(err)
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.D) (*model.User, error) {
	var u model.User
	err := r.coll.FindOne(ctx, filter).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *MongoRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctx, bson.D{{Key: "id", Value: id}})
}

func (r *MongoRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *MongoRepository) FindByPhone(ctx context.Context, phone string) (*model.User, error) {
	return r.findOne(ctx, bson.D{{Key: "phone", Value: phone}})
}

func (r *MongoRepository) FindByOrderID(ctx context.Context, orderID string) (*model.User, error) {
	return r.findOne(ctx, bson.D{{Key: "orders.id", Value: orderID}})
}

func (r *MongoRepository) FindAll(ctx context.Context) ([]model.User, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	users := []model.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *MongoRepository) update(ctx context.Context, id string, set bson.D) error {
	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "id", Value: id}}, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return mongoDuplicate(err)
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound("user %s not found", id)
	}
	return nil
}

func (r *MongoRepository) Update(ctx context.Context, u *model.User) error {
	return r.update(ctx, u.ID, bson.D{
		{Key: "name", Value: u.Name},
		{Key: "email", Value: u.Email},
		{Key: "phone", Value: u.Phone},
		{Key: "passwordHash", Value: u.PasswordHash},
		{Key: "role", Value: u.Role},
		{Key: "profilePictureUrl", Value: u.ProfilePictureURL},
		{Key: "updatedAt", Value: u.UpdatedAt},
	})
}

func (r *MongoRepository) ReplaceAddresses(ctx context.Context, userID string, addresses []model.Address) error {
	if addresses == nil {
		addresses = []model.Address{}
	}
	return r.update(ctx, userID, bson.D{
		{Key: "addresses", Value: addresses},
		{Key: "updatedAt", Value: time.Now()},
	})
}

func (r *MongoRepository) ReplaceOrders(ctx context.Context, userID string, orders []model.Order) error {
	if orders == nil {
		orders = []model.Order{}
	}
	return r.update(ctx, userID, bson.D{
		{Key: "orders", Value: orders},
		{Key: "updatedAt", Value: time.Now()},
	})
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperror.NotFound("user %s not found", id)
	}
	return nil
}
