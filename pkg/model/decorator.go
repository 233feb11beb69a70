package model

// Decorator enriches a form model after the schema-derived structure has been
// built.
type Decorator interface {
	Decorate(*FormModel) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*FormModel) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(form *FormModel) error {
	return fn(form)
}

// Chain runs decorators in order, stopping at the first error. Nil entries are
// skipped.
func Chain(decorators ...Decorator) Decorator {
	return DecoratorFunc(func(form *FormModel) error {
		for _, decorator := range decorators {
			if decorator == nil {
				continue
			}
			if err := decorator.Decorate(form); err != nil {
				return err
			}
		}
		return nil
	})
}
