// Package penumbra maps records between two related but differently shaped
// representations: a "light" side (the application domain object) and a
// "dark" side (the wire or storage row). A Mapper holds a declarative field
// correspondence between the two and performs value transformation and
// object reconstruction across it, in both directions.
package penumbra

// NameTransformer derives a dark-side name from a string light-side name.
// It is used only as a fallback when a registration supplies no explicit
// dark name, and only for string keys; integer and token keys always default
// to themselves.
type NameTransformer func(fieldName string) string

// LightFactory turns an assembled light-side record into the final light
// object. It receives the record the per-field pass built and the original
// dark source it was built from.
type LightFactory[Light any] func(assembled Record, originalDark Record) Light

// DarkFactory is the dark-side counterpart of LightFactory.
type DarkFactory[Dark any] func(assembled Record, originalLight Record) Dark

// PartialHook receives the original source record for a mapping call and
// returns a replacement result for the whole call.
type PartialHook func(original Record) Record

// PartialMapping pairs optional per-direction hooks. A hook, when present,
// replaces the assembled result for its direction wholesale rather than
// merging into it; with several registered, the last one wins. A nil hook
// leaves that direction untouched.
type PartialMapping struct {
	ToDark  PartialHook
	ToLight PartialHook
}

// Mapper owns a bidirectional field correspondence between a light and a
// dark record shape, plus the optional machinery around it: a name
// transformer for deriving dark names, per-field per-direction value
// transformers, per-side factories, and partial-mapping hooks.
//
// A Mapper is configured once through the fluent Use*/RegisterMapping calls
// and is read-only during mapping. A configured Mapper is safe for
// concurrent mapping calls as long as the supplied callbacks are.
//
// Example:
//
//	mapper := penumbra.Create[User, penumbra.Record]().
//		UseNameTransformer(toSnake).
//		RegisterMapping(penumbra.StringKey("firstName")).
//		RegisterMapping(penumbra.StringKey("lastName")).
//		UseFactory(newUser)
type Mapper[Light, Dark any] struct {
	fieldMap        *keyTable
	reverseFieldMap *keyTable

	toDarkTransformers  map[Key]ValueTransformer // keyed by dark name
	toLightTransformers map[Key]ValueTransformer // keyed by light name

	nameTransformer NameTransformer
	lightFactory    LightFactory[Light]
	darkFactory     DarkFactory[Dark]

	partialMappings []PartialMapping
}

// Create returns an empty mapper ready for fluent configuration. Callers
// that want raw records back instead of reconstructed objects instantiate
// it as Create[Record, Record]() and skip the factories.
func Create[Light, Dark any]() *Mapper[Light, Dark] {
	return &Mapper[Light, Dark]{
		fieldMap:            newKeyTable(),
		reverseFieldMap:     newKeyTable(),
		toDarkTransformers:  make(map[Key]ValueTransformer),
		toLightTransformers: make(map[Key]ValueTransformer),
	}
}

// UseFactory sets the light-side factory. It is an alias of UseLightFactory.
func (m *Mapper[Light, Dark]) UseFactory(factory LightFactory[Light]) *Mapper[Light, Dark] {
	return m.UseLightFactory(factory)
}

// UseLightFactory sets the function invoked after assembling a light-side
// result; it receives the assembled record and the original dark source.
func (m *Mapper[Light, Dark]) UseLightFactory(factory LightFactory[Light]) *Mapper[Light, Dark] {
	m.lightFactory = factory
	return m
}

// UseDarkFactory sets the dark-side factory.
func (m *Mapper[Light, Dark]) UseDarkFactory(factory DarkFactory[Dark]) *Mapper[Light, Dark] {
	m.darkFactory = factory
	return m
}

// UseNameTransformer sets the fallback string-name derivation used by
// RegisterMapping. It must be set before the registrations that rely on it;
// earlier registrations keep their already-resolved dark names.
func (m *Mapper[Light, Dark]) UseNameTransformer(transform NameTransformer) *Mapper[Light, Dark] {
	m.nameTransformer = transform
	return m
}

// MappingOption configures a single RegisterMapping call.
type MappingOption func(*mappingConfig)

type mappingConfig struct {
	darkName           Key
	toDarkTransformer  ValueTransformer
	toLightTransformer ValueTransformer
}

// WithDarkName gives the registration an explicit dark name, which always
// takes precedence over the name transformer.
func WithDarkName(name Key) MappingOption {
	return func(cfg *mappingConfig) {
		cfg.darkName = name
	}
}

// WithToDarkTransformer attaches a transformer applied to this field's value
// when mapping toward the dark side.
func WithToDarkTransformer(transform ValueTransformer) MappingOption {
	return func(cfg *mappingConfig) {
		cfg.toDarkTransformer = transform
	}
}

// WithToLightTransformer attaches a transformer applied to this field's
// value when mapping toward the light side.
func WithToLightTransformer(transform ValueTransformer) MappingOption {
	return func(cfg *mappingConfig) {
		cfg.toLightTransformer = transform
	}
}

// RegisterMapping registers the correspondence for one field. The dark name
// resolves, in order, to the explicit WithDarkName option; else, for string
// light names with a name transformer configured, the transformer's output;
// else the light name itself.
//
// Re-registering a light name overwrites its mapping, last write wins. The
// old reverse entry is not cleaned up: a new dark name appends a fresh
// reverse entry and leaves the previous one dangling with its stale light
// pointer. Callers rely on these overwrite semantics.
func (m *Mapper[Light, Dark]) RegisterMapping(lightName Key, opts ...MappingOption) *Mapper[Light, Dark] {
	var cfg mappingConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	darkName := cfg.darkName
	if darkName.IsZero() {
		if name, isString := lightName.stringName(); isString && m.nameTransformer != nil {
			darkName = StringKey(m.nameTransformer(name))
		} else {
			darkName = lightName
		}
	}

	m.fieldMap.set(lightName, darkName)
	m.reverseFieldMap.set(darkName, lightName)

	if cfg.toDarkTransformer != nil {
		m.toDarkTransformers[darkName] = cfg.toDarkTransformer
	}
	if cfg.toLightTransformer != nil {
		m.toLightTransformers[lightName] = cfg.toLightTransformer
	}
	return m
}

// UsePartialMapping appends a hook pair to the ordered hook list.
func (m *Mapper[Light, Dark]) UsePartialMapping(hooks PartialMapping) *Mapper[Light, Dark] {
	m.partialMappings = append(m.partialMappings, hooks)
	return m
}

// DarkNameFromLightName returns the dark name registered for a light name.
func (m *Mapper[Light, Dark]) DarkNameFromLightName(lightName Key) (Key, bool) {
	return m.fieldMap.get(lightName)
}

// LightNameFromDarkName returns the light name behind a dark name.
func (m *Mapper[Light, Dark]) LightNameFromDarkName(darkName Key) (Key, bool) {
	return m.reverseFieldMap.get(darkName)
}

// LightNames returns every registered light name in registration order.
func (m *Mapper[Light, Dark]) LightNames() []Key {
	return m.fieldMap.keys()
}

// DarkNames returns every dark name in the current order of the reverse
// table. This matches registration order until a re-registration changes a
// field's dark name, which appends the new name and leaves the old entry in
// its original position.
func (m *Mapper[Light, Dark]) DarkNames() []Key {
	return m.reverseFieldMap.keys()
}

// TransformValueFromLight applies the toDark transformer registered for
// lightName's field to value. An unregistered name or an absent transformer
// passes the value through unchanged.
func (m *Mapper[Light, Dark]) TransformValueFromLight(lightName Key, value any) any {
	darkName, ok := m.fieldMap.get(lightName)
	if !ok {
		return value
	}
	transform, ok := m.toDarkTransformers[darkName]
	if !ok {
		return value
	}
	return transform(value)
}

// TransformValueFromDark is the toLight counterpart of
// TransformValueFromLight.
func (m *Mapper[Light, Dark]) TransformValueFromDark(darkName Key, value any) any {
	lightName, ok := m.reverseFieldMap.get(darkName)
	if !ok {
		return value
	}
	transform, ok := m.toLightTransformers[lightName]
	if !ok {
		return value
	}
	return transform(value)
}

// MapToDark maps a whole light record to its dark result: every registered
// field is copied under its dark name with its toDark transformer applied,
// partial-mapping hooks may then replace the assembled record, and the dark
// factory, when configured, builds the final object.
func (m *Mapper[Light, Dark]) MapToDark(light Record) Dark {
	result := m.assembleToDark(light, false)
	result = m.applyToDarkHooks(result, light)
	if m.darkFactory != nil {
		return m.darkFactory(result, light)
	}
	return rawResult[Dark](result)
}

// MapToLight is the dark-to-light counterpart of MapToDark.
func (m *Mapper[Light, Dark]) MapToLight(dark Record) Light {
	result := m.assembleToLight(dark, false)
	result = m.applyToLightHooks(result, dark)
	if m.lightFactory != nil {
		return m.lightFactory(result, dark)
	}
	return rawResult[Light](result)
}

// MapPartialToDark maps only the fields actually present in partial. A key
// set to nil is present and is copied; a key never set is skipped.
// Partial-mapping hooks still run against the partial input. The dark
// factory runs only when useFactory is true; otherwise the raw assembled
// record is the result even when a factory is configured.
func (m *Mapper[Light, Dark]) MapPartialToDark(partial Record, useFactory bool) Dark {
	result := m.assembleToDark(partial, true)
	result = m.applyToDarkHooks(result, partial)
	if useFactory && m.darkFactory != nil {
		return m.darkFactory(result, partial)
	}
	return rawResult[Dark](result)
}

// MapPartialToLight is the dark-to-light counterpart of MapPartialToDark.
func (m *Mapper[Light, Dark]) MapPartialToLight(partial Record, useFactory bool) Light {
	result := m.assembleToLight(partial, true)
	result = m.applyToLightHooks(result, partial)
	if useFactory && m.lightFactory != nil {
		return m.lightFactory(result, partial)
	}
	return rawResult[Light](result)
}

// ArrayMapToDark applies MapToDark element-wise, preserving order and
// length.
func (m *Mapper[Light, Dark]) ArrayMapToDark(lights []Record) []Dark {
	if lights == nil {
		return nil
	}
	out := make([]Dark, 0, len(lights))
	for _, light := range lights {
		out = append(out, m.MapToDark(light))
	}
	return out
}

// ArrayMapToLight applies MapToLight element-wise.
func (m *Mapper[Light, Dark]) ArrayMapToLight(darks []Record) []Light {
	if darks == nil {
		return nil
	}
	out := make([]Light, 0, len(darks))
	for _, dark := range darks {
		out = append(out, m.MapToLight(dark))
	}
	return out
}

// ArrayMapPartialToDark applies MapPartialToDark element-wise with the same
// useFactory flag for every element.
func (m *Mapper[Light, Dark]) ArrayMapPartialToDark(partials []Record, useFactory bool) []Dark {
	if partials == nil {
		return nil
	}
	out := make([]Dark, 0, len(partials))
	for _, partial := range partials {
		out = append(out, m.MapPartialToDark(partial, useFactory))
	}
	return out
}

// ArrayMapPartialToLight applies MapPartialToLight element-wise.
func (m *Mapper[Light, Dark]) ArrayMapPartialToLight(partials []Record, useFactory bool) []Light {
	if partials == nil {
		return nil
	}
	out := make([]Light, 0, len(partials))
	for _, partial := range partials {
		out = append(out, m.MapPartialToLight(partial, useFactory))
	}
	return out
}

func (m *Mapper[Light, Dark]) assembleToDark(light Record, presentOnly bool) Record {
	result := make(Record, m.fieldMap.len())
	for _, lightName := range m.fieldMap.order {
		if presentOnly {
			if _, present := light[lightName]; !present {
				continue
			}
		}
		darkName, _ := m.fieldMap.get(lightName)
		result[darkName] = m.TransformValueFromLight(lightName, light[lightName])
	}
	return result
}

// assembleToLight walks the reverse table, so a dangling reverse entry left
// by a dark-name collision still participates here.
func (m *Mapper[Light, Dark]) assembleToLight(dark Record, presentOnly bool) Record {
	result := make(Record, m.reverseFieldMap.len())
	for _, darkName := range m.reverseFieldMap.order {
		if presentOnly {
			if _, present := dark[darkName]; !present {
				continue
			}
		}
		lightName, _ := m.reverseFieldMap.get(darkName)
		result[lightName] = m.TransformValueFromDark(darkName, dark[darkName])
	}
	return result
}

func (m *Mapper[Light, Dark]) applyToDarkHooks(result, original Record) Record {
	for _, hooks := range m.partialMappings {
		if hooks.ToDark != nil {
			result = hooks.ToDark(original)
		}
	}
	return result
}

func (m *Mapper[Light, Dark]) applyToLightHooks(result, original Record) Record {
	for _, hooks := range m.partialMappings {
		if hooks.ToLight != nil {
			result = hooks.ToLight(original)
		}
	}
	return result
}

// rawResult delivers the assembled record itself when no factory is
// configured. The comma-ok assertion keeps a type mismatch silent, in line
// with absent optional configuration never failing: a caller that skipped
// the factory but asked for a non-Record result gets that type's zero
// value.
func rawResult[T any](assembled Record) T {
	out, _ := any(assembled).(T)
	return out
}
