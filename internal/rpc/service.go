// Package rpc exposes the order calculator over gRPC. Messages are
// google.protobuf.Struct values so no generated code is needed.
package rpc

import (
	"context"
	"errors"
	"strconv"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/ordercalc/internal/calculator"
	"github.com/xtding233/ordercalc/internal/metrics"
	"github.com/xtding233/ordercalc/internal/pricing"
)

const ServiceName = "ordercalc.v1.OrderCalculator"

const (
	quoteMethod             = "/" + ServiceName + "/Quote"
	listRegionsMethod       = "/" + ServiceName + "/ListRegions"
	listDiscountTiersMethod = "/" + ServiceName + "/ListDiscountTiers"
)

// OrderCalculatorServer is the server API for the OrderCalculator service.
type OrderCalculatorServer interface {
	Quote(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListRegions(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	ListDiscountTiers(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// Server implements OrderCalculatorServer on top of the pricing core.
type Server struct {
	defaultRegion string
	metrics       *metrics.ServerMetrics
}

// NewServer builds the service. m may be nil.
func NewServer(defaultRegion string, m *metrics.ServerMetrics) *Server {
	if defaultRegion == "" {
		defaultRegion = calculator.DefaultRegion
	}
	return &Server{defaultRegion: defaultRegion, metrics: m}
}

// Quote prices {numItems, pricePerItem, regionCode}. Numeric fields may be
// numbers or strings.
func (s *Server) Quote(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()
	form := calculator.Form{
		NumItems:     fieldString(fields["numItems"]),
		PricePerItem: fieldString(fields["pricePerItem"]),
		RegionCode:   s.defaultRegion,
	}
	// An absent (or null) regionCode takes the server default; an empty
	// string is a region of its own and carries no tax.
	if v, ok := fields["regionCode"]; ok && v.GetKind() != nil {
		if _, isNull := v.GetKind().(*structpb.Value_NullValue); !isNull {
			form.RegionCode = fieldString(v)
		}
	}

	res, err := calculator.Calculate(form)
	if err != nil {
		switch {
		case errors.Is(err, calculator.ErrInvalidInput):
			return nil, status.Error(codes.InvalidArgument, err.Error())
		case errors.Is(err, calculator.ErrOutOfRange):
			return nil, status.Error(codes.OutOfRange, err.Error())
		}
		return nil, status.Error(codes.Internal, err.Error())
	}
	s.metrics.ObserveQuote(form.RegionCode, res)
	return structpb.NewStruct(calculationFields(res))
}

// ListRegions returns {regions: [{code, rate}]}.
func (s *Server) ListRegions(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	rates := pricing.TaxRates()
	regions := make([]any, 0, len(rates))
	for _, r := range rates {
		regions = append(regions, map[string]any{"code": r.Code, "rate": r.Rate})
	}
	return structpb.NewStruct(map[string]any{"regions": regions})
}

// ListDiscountTiers returns {tiers: [{threshold, percentage}]}, highest first.
func (s *Server) ListDiscountTiers(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	tiers := pricing.DiscountTiers()
	out := make([]any, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, map[string]any{"threshold": t.Threshold, "percentage": t.Percentage})
	}
	return structpb.NewStruct(map[string]any{"tiers": out})
}

func calculationFields(c pricing.OrderCalculation) map[string]any {
	return map[string]any{
		"subtotal":           c.Subtotal,
		"discountPercentage": c.DiscountPercentage,
		"discount":           c.Discount,
		"priceAfterDiscount": c.PriceAfterDiscount,
		"taxPercentage":      c.TaxPercentage,
		"tax":                c.Tax,
		"total":              c.Total,
	}
}

// CalculationFromStruct decodes a Quote response.
func CalculationFromStruct(s *structpb.Struct) pricing.OrderCalculation {
	f := s.GetFields()
	return pricing.OrderCalculation{
		Subtotal:           f["subtotal"].GetNumberValue(),
		DiscountPercentage: f["discountPercentage"].GetNumberValue(),
		Discount:           f["discount"].GetNumberValue(),
		PriceAfterDiscount: f["priceAfterDiscount"].GetNumberValue(),
		TaxPercentage:      f["taxPercentage"].GetNumberValue(),
		Tax:                f["tax"].GetNumberValue(),
		Total:              f["total"].GetNumberValue(),
	}
}

func fieldString(v *structpb.Value) string {
	switch k := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return k.StringValue
	case *structpb.Value_NumberValue:
		return strconv.FormatFloat(k.NumberValue, 'g', -1, 64)
	default:
		return ""
	}
}

// RegisterOrderCalculatorServer registers srv on s.
func RegisterOrderCalculatorServer(s grpc.ServiceRegistrar, srv OrderCalculatorServer) {
	s.RegisterService(&serviceDesc, srv)
}

func quoteHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrderCalculatorServer).Quote(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: quoteMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OrderCalculatorServer).Quote(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func listRegionsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrderCalculatorServer).ListRegions(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: listRegionsMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OrderCalculatorServer).ListRegions(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func listDiscountTiersHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrderCalculatorServer).ListDiscountTiers(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: listDiscountTiersMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OrderCalculatorServer).ListDiscountTiers(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*OrderCalculatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Quote", Handler: quoteHandler},
		{MethodName: "ListRegions", Handler: listRegionsHandler},
		{MethodName: "ListDiscountTiers", Handler: listDiscountTiersHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ordercalc/v1/ordercalc.proto",
}
