package penumbra

// ValueTransformer rewrites a single field value while it crosses between
// the light and dark sides. Transformers are expected to be pure; the mapper
// calls one at most once per field per mapping call.
type ValueTransformer func(value any) any

// Identity returns its input unchanged. It is the behavior every field gets
// when no transformer is registered for it.
func Identity(value any) any {
	return value
}

// Chain composes transformers left to right into a single ValueTransformer,
// so multi-step rewrites can be registered on one field.
//
// Example:
//
//	penumbra.Chain(trimSpace, upper) // "  us  " -> "US"
func Chain(transformers ...ValueTransformer) ValueTransformer {
	return func(value any) any {
		for _, transform := range transformers {
			value = transform(value)
		}
		return value
	}
}
