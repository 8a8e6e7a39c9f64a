package stock

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Violation messages returned to clients verbatim
const (
	MsgSymbolBlank        = "Stock symbol cannot be blank"
	MsgSymbolPattern      = "Symbol must be 3 letters followed by 1 number"
	MsgCompanyNameBlank   = "Company name cannot be blank"
	MsgCompanyNamePattern = "Company name has invalid characters. Alphanumeric characters and white spaces only."
	MsgPriceRequired      = "Price cannot be null"
	MsgPriceNegative      = "Price must be a positive number"
)

var (
	symbolPattern      = regexp.MustCompile(`^[A-Za-z]{3}\d$`)
	companyNamePattern = regexp.MustCompile(`^[a-zA-Z\d\t\n\v\f\r ]+$`)
)

// fieldOrder ranks violations by request field
var fieldOrder = map[string]int{
	"symbol":       0,
	"company_name": 1,
	"price":        2,
}

// messages maps "<json field>.<tag>" to the client-facing message
var messages = map[string]string{
	"symbol.notblank":          MsgSymbolBlank,
	"symbol.symbol":            MsgSymbolPattern,
	"company_name.notblank":    MsgCompanyNameBlank,
	"company_name.companyname": MsgCompanyNamePattern,
	"price.required":           MsgPriceRequired,
	"price.gte":                MsgPriceNegative,
}

// Validator checks stock requests against the field rules.
// Build it once with NewValidator and share it; it is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator with the stock rules registered
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Registration only fails on empty tags or nil funcs
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	// Pattern rules run at struct level so they are reported alongside notblank
	v.RegisterStructValidation(validatePatterns, Request{})

	return &Validator{validate: v}
}

// Validate returns nil when req is acceptable, otherwise a *ValidationError
// holding every failed rule, grouped by field.
func (v *Validator) Validate(req Request) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate stock request: %w", err)
	}

	verr := &ValidationError{Violations: make([]Violation, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		msg, ok := messages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("failed on the '%s' rule", fe.Tag())
		}
		verr.Violations = append(verr.Violations, Violation{Field: fe.Field(), Message: msg})
	}
	sort.SliceStable(verr.Violations, func(i, j int) bool {
		return fieldOrder[verr.Violations[i].Field] < fieldOrder[verr.Violations[j].Field]
	})
	return verr
}

func validatePatterns(sl validator.StructLevel) {
	req := sl.Current().Interface().(Request)

	if !symbolPattern.MatchString(req.Symbol) {
		sl.ReportError(req.Symbol, "symbol", "Symbol", "symbol", "")
	}
	if !companyNamePattern.MatchString(req.CompanyName) {
		sl.ReportError(req.CompanyName, "company_name", "CompanyName", "companyname", "")
	}
}
