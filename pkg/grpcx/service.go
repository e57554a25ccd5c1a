package grpcx

import (
	"context"

	"google.golang.org/grpc"
)

// Method is one unary RPC of a hand-described service.
type Method struct {
	name   string
	newReq func() interface{}
	invoke grpc.UnaryHandler
}

func Unary[Req, Resp any](name string, fn func(context.Context, *Req) (*Resp, error)) Method {
	return Method{
		name:   name,
		newReq: func() interface{} { return new(Req) },
		invoke: func(ctx context.Context, req interface{}) (interface{}, error) {
			return fn(ctx, req.(*Req))
		},
	}
}

// ServiceDesc builds a grpc.ServiceDesc for methods without generated stubs.
func ServiceDesc(serviceName string, methods ...Method) *grpc.ServiceDesc {
	desc := &grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*interface{})(nil),
		Metadata:    serviceName,
	}
	for _, m := range methods {
		m := m
		fullMethod := "/" + serviceName + "/" + m.name
		desc.Methods = append(desc.Methods, grpc.MethodDesc{
			MethodName: m.name,
			Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
				in := m.newReq()
				if err := dec(in); err != nil {
					return nil, err
				}
				if interceptor == nil {
					return m.invoke(ctx, in)
				}
				info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
				return interceptor(ctx, in, info, m.invoke)
			},
		})
	}
	return desc
}
