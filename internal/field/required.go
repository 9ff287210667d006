package field

// DefaultRequiredFields are always present in the group.
var DefaultRequiredFields = []string{
	"public_id",
	"original_filename",
	"secure_url",
	"resource_type",
	"format",
}

var (
	numericFields = map[string]struct{}{
		"height": {},
		"width":  {},
		"size":   {},
		"bytes":  {},
	}
	booleanFields = map[string]struct{}{
		"isPrivateFile": {},
	}
)

// GetPartialField wraps a bare name into the generic field shape.
func GetPartialField(name string) Spec {
	return Spec{Name: name, Type: TypeText}
}

// Names turns plain field names into untyped specs for MapRequiredFields.
func Names(names ...string) []Spec {
	specs := make([]Spec, 0, len(names))
	for _, n := range names {
		specs = append(specs, Spec{Name: n})
	}
	return specs
}

// infer picks the field shape for a name.
func infer(name string) Spec {
	if _, ok := numericFields[name]; ok {
		return Spec{Name: name, Type: TypeNumber}
	}
	if _, ok := booleanFields[name]; ok {
		return Spec{Name: name, Type: TypeCheckbox}
	}
	return GetPartialField(name)
}

// MapRequiredFields merges the requested fields with DefaultRequiredFields.
// Requested entries come first in their given order, then the defaults not
// already named. The first entry for a name wins. Entries without a Type get
// one inferred from their name; nameless entries are dropped.
func MapRequiredFields(requested []Spec) []Spec {
	out := make([]Spec, 0, len(requested)+len(DefaultRequiredFields))
	seen := make(map[string]struct{}, cap(out))

	add := func(s Spec) {
		if s.Name == "" {
			return
		}
		if _, dup := seen[s.Name]; dup {
			return
		}
		seen[s.Name] = struct{}{}
		if s.Type == "" {
			inferred := infer(s.Name)
			s.Type = inferred.Type
		}
		out = append(out, s)
	}

	for _, s := range requested {
		add(s)
	}
	for _, name := range DefaultRequiredFields {
		add(infer(name))
	}
	return out
}

// Group builds the group field holding the asset metadata, read-only and
// hidden in the admin UI.
func Group(requested []Spec) Spec {
	return Spec{
		Name:   GroupName,
		Type:   TypeGroup,
		Admin:  Admin{ReadOnly: true, Hidden: true},
		Fields: MapRequiredFields(requested),
	}
}
