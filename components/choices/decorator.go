package choices

import (
	"github.com/goliatone/go-formkit/pkg/model"
)

// PopulateDecorator returns a decorator that fills the named field's options
// from the catalog. Fields that already declare options keep them; fields
// other than select and radio are left alone.
func PopulateDecorator(fieldName string, fns ...OptionFn) model.Decorator {
	opts := NewOptions(fns...)
	return model.DecoratorFunc(func(form *model.Form) error {
		if form == nil {
			return nil
		}
		for idx, field := range form.Fields {
			if field.Name != fieldName {
				continue
			}
			if field.Kind != model.FieldKindSelect && field.Kind != model.FieldKindRadio {
				continue
			}
			if len(field.Options) > 0 {
				continue
			}
			form.Fields[idx].Options = append([]string{}, opts.Values...)
		}
		return nil
	})
}
