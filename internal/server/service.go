package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "h2h.v1.HeatSheetService"

// Method names, also used to build full method paths for clients.
const (
	MethodParseText       = "ParseText"
	MethodGetSheet        = "GetSheet"
	MethodListSheets      = "ListSheets"
	MethodExportSheet     = "ExportSheet"
	MethodIngestFile      = "IngestFile"
	MethodIngestDirectory = "IngestDirectory"
)

// HeatSheetServer is the server API for h2h.v1.HeatSheetService. Requests and
// responses are well-known protobuf types so no generated code is needed.
type HeatSheetServer interface {
	ParseText(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetSheet(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListSheets(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ExportSheet(context.Context, *structpb.Struct) (*wrapperspb.BytesValue, error)
	IngestFile(context.Context, *structpb.Struct) (*structpb.Struct, error)
	IngestDirectory(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterHeatSheetServer registers srv on s.
func RegisterHeatSheetServer(s grpc.ServiceRegistrar, srv HeatSheetServer) {
	s.RegisterService(&HeatSheetServiceDesc, srv)
}

func fullMethod(name string) string { return "/" + ServiceName + "/" + name }

func unaryHandler[Resp any](method string, call func(HeatSheetServer, context.Context, *structpb.Struct) (Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(HeatSheetServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(method)}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(HeatSheetServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// HeatSheetServiceDesc is the grpc.ServiceDesc for h2h.v1.HeatSheetService.
var HeatSheetServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*HeatSheetServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: MethodParseText, Handler: unaryHandler(MethodParseText, HeatSheetServer.ParseText)},
		{MethodName: MethodGetSheet, Handler: unaryHandler(MethodGetSheet, HeatSheetServer.GetSheet)},
		{MethodName: MethodListSheets, Handler: unaryHandler(MethodListSheets, HeatSheetServer.ListSheets)},
		{MethodName: MethodExportSheet, Handler: unaryHandler(MethodExportSheet, HeatSheetServer.ExportSheet)},
		{MethodName: MethodIngestFile, Handler: unaryHandler(MethodIngestFile, HeatSheetServer.IngestFile)},
		{MethodName: MethodIngestDirectory, Handler: unaryHandler(MethodIngestDirectory, HeatSheetServer.IngestDirectory)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "h2h/v1/heatsheet.proto",
}
