package grpc

import (
	"context"

	"google.golang.org/grpc"
)

const (
	BookingServiceName = "clinic.v1.BookingService"
	CareersServiceName = "clinic.v1.CareersService"
)

const (
	BookingService_ListProviders_FullMethodName     = "/" + BookingServiceName + "/ListProviders"
	BookingService_CheckAvailability_FullMethodName = "/" + BookingServiceName + "/CheckAvailability"
	BookingService_CreateBooking_FullMethodName     = "/" + BookingServiceName + "/CreateBooking"
	BookingService_ListServices_FullMethodName      = "/" + BookingServiceName + "/ListServices"

	CareersService_ListPostings_FullMethodName      = "/" + CareersServiceName + "/ListPostings"
	CareersService_SubmitApplication_FullMethodName = "/" + CareersServiceName + "/SubmitApplication"
	CareersService_GetApplication_FullMethodName    = "/" + CareersServiceName + "/GetApplication"
)

type BookingServiceServer interface {
	ListProviders(context.Context, *ListProvidersRequest) (*ListProvidersResponse, error)
	CheckAvailability(context.Context, *CheckAvailabilityRequest) (*CheckAvailabilityResponse, error)
	CreateBooking(context.Context, *CreateBookingRequest) (*CreateBookingResponse, error)
	ListServices(context.Context, *ListServicesRequest) (*ListServicesResponse, error)
}

type CareersServiceServer interface {
	ListPostings(context.Context, *ListPostingsRequest) (*ListPostingsResponse, error)
	SubmitApplication(context.Context, *SubmitApplicationRequest) (*SubmitApplicationResponse, error)
	GetApplication(context.Context, *GetApplicationRequest) (*GetApplicationResponse, error)
}

var BookingService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: BookingServiceName,
	HandlerType: (*BookingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListProviders", Handler: unary(BookingService_ListProviders_FullMethodName, BookingServiceServer.ListProviders)},
		{MethodName: "CheckAvailability", Handler: unary(BookingService_CheckAvailability_FullMethodName, BookingServiceServer.CheckAvailability)},
		{MethodName: "CreateBooking", Handler: unary(BookingService_CreateBooking_FullMethodName, BookingServiceServer.CreateBooking)},
		{MethodName: "ListServices", Handler: unary(BookingService_ListServices_FullMethodName, BookingServiceServer.ListServices)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "clinic/v1/clinic.json",
}

var CareersService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: CareersServiceName,
	HandlerType: (*CareersServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListPostings", Handler: unary(CareersService_ListPostings_FullMethodName, CareersServiceServer.ListPostings)},
		{MethodName: "SubmitApplication", Handler: unary(CareersService_SubmitApplication_FullMethodName, CareersServiceServer.SubmitApplication)},
		{MethodName: "GetApplication", Handler: unary(CareersService_GetApplication_FullMethodName, CareersServiceServer.GetApplication)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "clinic/v1/clinic.json",
}

func RegisterBookingServiceServer(s grpc.ServiceRegistrar, srv BookingServiceServer) {
	s.RegisterService(&BookingService_ServiceDesc, srv)
}

func RegisterCareersServiceServer(s grpc.ServiceRegistrar, srv CareersServiceServer) {
	s.RegisterService(&CareersService_ServiceDesc, srv)
}

// unary adapts a typed server method into a grpc.MethodDesc handler, decoding the
// request with whichever codec the caller negotiated.
func unary[S any, Req any, Resp any](fullMethod string, call func(S, context.Context, *Req) (*Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(S), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(S), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}
