package analysis

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Service and method names. Messages travel as google.protobuf.Struct documents whose
// fields mirror the JSON tags of the request and response types in messages.go.
const (
	ServiceName = "wargame.analysis.v1.AnalysisService"

	SuggestMoveFullMethodName  = "/" + ServiceName + "/SuggestMove"
	LegalActionsFullMethodName = "/" + ServiceName + "/LegalActions"
)

// AnalysisServiceServer is the server API for the analysis service.
type AnalysisServiceServer interface {
	SuggestMove(context.Context, *structpb.Struct) (*structpb.Struct, error)
	LegalActions(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterAnalysisServiceServer registers srv on s.
func RegisterAnalysisServiceServer(s grpc.ServiceRegistrar, srv AnalysisServiceServer) {
	s.RegisterService(&AnalysisService_ServiceDesc, srv)
}

func _AnalysisService_SuggestMove_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AnalysisServiceServer).SuggestMove(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SuggestMoveFullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AnalysisServiceServer).SuggestMove(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _AnalysisService_LegalActions_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AnalysisServiceServer).LegalActions(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: LegalActionsFullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AnalysisServiceServer).LegalActions(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// AnalysisService_ServiceDesc is the grpc.ServiceDesc for the analysis service.
var AnalysisService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AnalysisServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SuggestMove",
			Handler:    _AnalysisService_SuggestMove_Handler,
		},
		{
			MethodName: "LegalActions",
			Handler:    _AnalysisService_LegalActions_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "wargame/analysis/v1/analysis.proto",
}
