package stock

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func validRequest() Request {
	return Request{Symbol: "ABC0", CompanyName: "Test Company", Price: ptr(99.99)}
}

func violationsOf(t *testing.T, err error) *ValidationError {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
	return verr
}

func TestValidator_Accepts(t *testing.T) {
	v := NewValidator()

	t.Run("valid request", func(t *testing.T) {
		assert.NoError(t, v.Validate(validRequest()))
	})

	t.Run("zero price", func(t *testing.T) {
		req := validRequest()
		req.Price = ptr(0)
		assert.NoError(t, v.Validate(req))
	})

	t.Run("lower case symbol", func(t *testing.T) {
		req := validRequest()
		req.Symbol = "abc9"
		assert.NoError(t, v.Validate(req))
	})
}

func messagesFor(verr *ValidationError, field string) []string {
	var msgs []string
	for _, v := range verr.Violations {
		if v.Field == field {
			msgs = append(msgs, v.Message)
		}
	}
	return msgs
}

func TestValidator_Symbol(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name   string
		symbol string
		want   []string
	}{
		{"empty", "", []string{MsgSymbolBlank, MsgSymbolPattern}},
		{"whitespace only", "    ", []string{MsgSymbolBlank, MsgSymbolPattern}},
		{"long word", "invalidSymbol", []string{MsgSymbolPattern}},
		{"missing digit", "ABCD", []string{MsgSymbolPattern}},
		{"two digits", "AB12", []string{MsgSymbolPattern}},
		{"trailing text", "ABC1X", []string{MsgSymbolPattern}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.Symbol = tt.symbol

			verr := violationsOf(t, v.Validate(req))
			assert.Equal(t, tt.want, messagesFor(verr, "symbol"), "violations: %+v", verr.Violations)
			assert.Len(t, verr.Violations, len(tt.want))
		})
	}
}

func TestValidator_CompanyName(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name        string
		companyName string
		want        []string
	}{
		{"empty", "", []string{MsgCompanyNameBlank, MsgCompanyNamePattern}},
		{"blank", " \t ", []string{MsgCompanyNameBlank}},
		{"invalid characters", "@~!+", []string{MsgCompanyNamePattern}},
		{"punctuation", "Acme, Inc.", []string{MsgCompanyNamePattern}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.CompanyName = tt.companyName

			verr := violationsOf(t, v.Validate(req))
			assert.Equal(t, tt.want, messagesFor(verr, "company_name"), "violations: %+v", verr.Violations)
			assert.Len(t, verr.Violations, len(tt.want))
		})
	}

	t.Run("any whitespace between words", func(t *testing.T) {
		for _, name := range []string{"Test Co", "Test\tCo", "Test\vCo", "Test\fCo", "Test\r\nCo"} {
			req := validRequest()
			req.CompanyName = name
			assert.NoError(t, v.Validate(req), "company name %q", name)
		}
	})
}

func TestValidator_Price(t *testing.T) {
	v := NewValidator()

	t.Run("missing", func(t *testing.T) {
		req := validRequest()
		req.Price = nil
		verr := violationsOf(t, v.Validate(req))
		assert.True(t, verr.Has(MsgPriceRequired))
	})

	t.Run("negative", func(t *testing.T) {
		req := validRequest()
		req.Price = ptr(-0.1)
		verr := violationsOf(t, v.Validate(req))
		assert.True(t, verr.Has(MsgPriceNegative))
	})
}

func TestValidator_ReportsAllFields(t *testing.T) {
	v := NewValidator()

	err := v.Validate(Request{Symbol: "", CompanyName: "Test Company", Price: ptr(-5)})
	verr := violationsOf(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, []Violation{
		{Field: "symbol", Message: MsgSymbolBlank},
		{Field: "symbol", Message: MsgSymbolPattern},
		{Field: "price", Message: MsgPriceNegative},
	}, verr.Violations)

	err = v.Validate(Request{})
	verr = violationsOf(t, err)
	assert.Equal(t, []Violation{
		{Field: "symbol", Message: MsgSymbolBlank},
		{Field: "symbol", Message: MsgSymbolPattern},
		{Field: "company_name", Message: MsgCompanyNameBlank},
		{Field: "company_name", Message: MsgCompanyNamePattern},
		{Field: "price", Message: MsgPriceRequired},
	}, verr.Violations)
	assert.Contains(t, err.Error(), "Validation failed. Details: [symbol: "+MsgSymbolBlank+"]")
}

func TestValidator_Concurrent(t *testing.T) {
	v := NewValidator()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validRequest()
			if i%2 == 0 {
				req.Symbol = "bad"
				if err := v.Validate(req); err == nil {
					t.Errorf("expected rejection for %q", req.Symbol)
				}
				return
			}
			if err := v.Validate(req); err != nil {
				t.Errorf("unexpected rejection: %v", err)
			}
		}(i)
	}
	wg.Wait()
}
