package grpc

import (
	"context"

	"google.golang.org/grpc"
)

// BookingClient calls clinic.v1.BookingService over a connection, always
// selecting the JSON codec.
type BookingClient struct {
	cc grpc.ClientConnInterface
}

func NewBookingClient(cc grpc.ClientConnInterface) *BookingClient {
	return &BookingClient{cc: cc}
}

func (c *BookingClient) ListProviders(ctx context.Context, in *ListProvidersRequest, opts ...grpc.CallOption) (*ListProvidersResponse, error) {
	out := new(ListProvidersResponse)
	if err := invoke(ctx, c.cc, BookingService_ListProviders_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *BookingClient) CheckAvailability(ctx context.Context, in *CheckAvailabilityRequest, opts ...grpc.CallOption) (*CheckAvailabilityResponse, error) {
	out := new(CheckAvailabilityResponse)
	if err := invoke(ctx, c.cc, BookingService_CheckAvailability_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *BookingClient) CreateBooking(ctx context.Context, in *CreateBookingRequest, opts ...grpc.CallOption) (*CreateBookingResponse, error) {
	out := new(CreateBookingResponse)
	if err := invoke(ctx, c.cc, BookingService_CreateBooking_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *BookingClient) ListServices(ctx context.Context, in *ListServicesRequest, opts ...grpc.CallOption) (*ListServicesResponse, error) {
	out := new(ListServicesResponse)
	if err := invoke(ctx, c.cc, BookingService_ListServices_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

type CareersClient struct {
	cc grpc.ClientConnInterface
}

func NewCareersClient(cc grpc.ClientConnInterface) *CareersClient {
	return &CareersClient{cc: cc}
}

func (c *CareersClient) ListPostings(ctx context.Context, in *ListPostingsRequest, opts ...grpc.CallOption) (*ListPostingsResponse, error) {
	out := new(ListPostingsResponse)
	if err := invoke(ctx, c.cc, CareersService_ListPostings_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CareersClient) SubmitApplication(ctx context.Context, in *SubmitApplicationRequest, opts ...grpc.CallOption) (*SubmitApplicationResponse, error) {
	out := new(SubmitApplicationResponse)
	if err := invoke(ctx, c.cc, CareersService_SubmitApplication_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CareersClient) GetApplication(ctx context.Context, in *GetApplicationRequest, opts ...grpc.CallOption) (*GetApplicationResponse, error) {
	out := new(GetApplicationResponse)
	if err := invoke(ctx, c.cc, CareersService_GetApplication_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func invoke(ctx context.Context, cc grpc.ClientConnInterface, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return cc.Invoke(ctx, method, in, out, opts...)
}
