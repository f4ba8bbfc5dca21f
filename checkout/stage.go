package checkout

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strings"

	"food-storefront/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type Stage string

const (
	// StageEmpty is shown instead of the wizard while the cart has no items.
	StageEmpty   Stage = "empty"
	StageDetails Stage = "details"
	StageAddress Stage = "address"
	StagePayment Stage = "payment"
)

var stageOrder = []Stage{StageDetails, StageAddress, StagePayment}

func (s Stage) next() (Stage, bool) {
	i := slices.Index(stageOrder, s)
	if i < 0 || i == len(stageOrder)-1 {
		return s, false
	}
	return stageOrder[i+1], true
}

func (s Stage) prev() (Stage, bool) {
	i := slices.Index(stageOrder, s)
	if i <= 0 {
		return s, false
	}
	return stageOrder[i-1], true
}

// DeliverySlots are the slots a customer may pick. An empty slot means no
// preference.
var DeliverySlots = []string{
	"ASAP (25-35 mins)",
	"12:00 PM - 1:00 PM",
	"1:00 PM - 2:00 PM",
	"2:00 PM - 3:00 PM",
	"7:00 PM - 8:00 PM",
	"8:00 PM - 9:00 PM",
	"9:00 PM - 10:00 PM",
}

var TipPresets = []decimal.Decimal{
	models.Amount(0),
	models.Amount(20),
	models.Amount(30),
	models.Amount(50),
}

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidTransition  = errors.New("invalid checkout transition")
	ErrSubmissionInFlight = errors.New("order submission already in progress")
)

// ValidationError lists the fields that keep a stage from being completed.
type ValidationError struct {
	Stage  Stage
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return fmt.Sprintf("%s: invalid %s", e.Stage, strings.Join(names, ", "))
}

type detailsRules struct {
	OrderType     models.OrderType `json:"orderType" validate:"oneof=delivery pickup dine-in"`
	CustomerName  string           `json:"customerName" validate:"required"`
	CustomerPhone string           `json:"customerPhone" validate:"required"`
	CustomerEmail string           `json:"customerEmail" validate:"required,email"`
	DeliverySlot  string           `json:"deliverySlot" validate:"omitempty,deliveryslot"`
}

type paymentRules struct {
	PaymentMethod models.PaymentMethod `json:"paymentMethod" validate:"oneof=cash card upi wallet"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("deliveryslot", func(fl validator.FieldLevel) bool {
		return slices.Contains(DeliverySlots, fl.Field().String())
	})
	return v
}

// checkStage validates the fields a stage collects. It returns nil or a
// *ValidationError.
func checkStage(v *validator.Validate, stage Stage, d models.OrderDraft) error {
	fields := map[string]string{}
	switch stage {
	case StageDetails:
		collect(fields, "", v.Struct(detailsRules{
			OrderType:     d.OrderType,
			CustomerName:  strings.TrimSpace(d.CustomerName),
			CustomerPhone: strings.TrimSpace(d.CustomerPhone),
			CustomerEmail: strings.TrimSpace(d.CustomerEmail),
			DeliverySlot:  d.DeliverySlot,
		}))
	case StageAddress:
		if d.OrderType == models.OrderDelivery {
			collect(fields, "deliveryAddress.", v.Struct(trimAddress(d.DeliveryAddress)))
		}
	case StagePayment:
		collect(fields, "", v.Struct(paymentRules{PaymentMethod: d.PaymentMethod}))
		if !slices.ContainsFunc(TipPresets, d.TipAmount.Equal) {
			fields["tipAmount"] = "must be one of 0, 20, 30, 50"
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Stage: stage, Fields: fields}
}

func collect(fields map[string]string, prefix string, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return
	}
	for _, fe := range verrs {
		fields[prefix+fe.Field()] = message(fe)
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "deliveryslot":
		return "is not an available delivery slot"
	}
	return "is invalid"
}

func trimAddress(a models.Address) models.Address {
	a.Street = strings.TrimSpace(a.Street)
	a.City = strings.TrimSpace(a.City)
	a.State = strings.TrimSpace(a.State)
	a.ZipCode = strings.TrimSpace(a.ZipCode)
	return a
}
