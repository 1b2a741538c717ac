package rate

import (
	"errors"
	"maps"
	"slices"
)

var (
	ErrCodeRequired    = errors.New("currency code is required")
	ErrCodeUnsupported = errors.New("currency code not supported")
)

type CurrencyValidator struct {
	supportedCodesSet map[string]struct{} // read only copy
	supportedCodesLst []string            // read only copy
}

func (v *CurrencyValidator) ValidateCode(code string) error {
	if code == "" {
		return ErrCodeRequired
	}
	if _, ok := v.supportedCodesSet[code]; !ok {
		return ErrCodeUnsupported
	}
	return nil
}

func (v *CurrencyValidator) SupportedCodes() []string {
	return slices.Clone(v.supportedCodesLst)
}

func NewValidator(supportedCurrencies map[string]struct{}) *CurrencyValidator {
	codesSet := maps.Clone(supportedCurrencies)
	codesLst := slices.Collect(maps.Keys(codesSet))
	slices.Sort(codesLst)

	return &CurrencyValidator{
		supportedCodesSet: codesSet,
		supportedCodesLst: codesLst,
	}
}
