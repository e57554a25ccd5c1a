package grpcx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

type echoRequest struct {
	Text string `json:"text"`
}

type echoResponse struct {
	Text string `json:"text"`
}

func TestCodec(t *testing.T) {
	c := Codec()
	assert.Equal(t, "json", c.Name())

	data, err := c.Marshal(&echoRequest{Text: "hi"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"hi"}`, string(data))

	var out echoRequest
	require.NoError(t, c.Unmarshal(data, &out))
	assert.Equal(t, "hi", out.Text)

	data, err = c.Marshal(&emptypb.Empty{})
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
	require.NoError(t, c.Unmarshal(nil, &emptypb.Empty{}))
}

func TestServiceDesc(t *testing.T) {
	desc := ServiceDesc("storefront.v1.EchoService",
		Unary("Echo", func(_ context.Context, req *echoRequest) (*echoResponse, error) {
			return &echoResponse{Text: req.Text + "!"}, nil
		}),
	)
	require.Len(t, desc.Methods, 1)
	assert.Equal(t, "Echo", desc.Methods[0].MethodName)

	dec := func(v interface{}) error {
		v.(*echoRequest).Text = "hello"
		return nil
	}

	resp, err := desc.Methods[0].Handler(nil, context.Background(), dec, nil)
	require.NoError(t, err)
	assert.Equal(t, "hello!", resp.(*echoResponse).Text)

	var fullMethod string
	interceptor := func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		fullMethod = info.FullMethod
		return handler(ctx, req)
	}
	_, err = desc.Methods[0].Handler(nil, context.Background(), dec, interceptor)
	require.NoError(t, err)
	assert.Equal(t, "/storefront.v1.EchoService/Echo", fullMethod)
}
