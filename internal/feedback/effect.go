package feedback

// EffectType classifies what an action did to the destination. The set
// is open ended; feedback actions record Updated effects.
type EffectType string

const (
	EffectCreated EffectType = "CREATED"
	EffectUpdated EffectType = "UPDATED"
	EffectDeleted EffectType = "DELETED"
)

// OriginRef identifies a reference in the origin that an effect was
// derived from.
type OriginRef struct {
	Ref string `json:"ref"`
}

// NewOriginRef creates an origin reference descriptor.
func NewOriginRef(ref string) OriginRef {
	return OriginRef{Ref: ref}
}

// DestinationRef identifies the entity that was touched in the
// destination, e.g. a pull request or a pushed branch.
type DestinationRef struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	URL  string `json:"url,omitempty"`
}

// NewDestinationRef creates a destination reference descriptor.
func NewDestinationRef(id, typ, url string) DestinationRef {
	return DestinationRef{ID: id, Type: typ, URL: url}
}

// DestinationEffect is one audit record of a concrete change an action
// made to the destination. Immutable once constructed.
type DestinationEffect struct {
	Type           EffectType     `json:"type"`
	Summary        string         `json:"summary"`
	OriginRefs     []OriginRef    `json:"origin_refs"`
	DestinationRef DestinationRef `json:"destination_ref"`
	Errors         []string       `json:"errors,omitempty"`
}

// NewEffect builds an effect record. The summary and the destination
// descriptor are mandatory; origin refs and errors default to empty
// ordered lists.
func NewEffect(typ EffectType, summary string, origins []OriginRef, dest DestinationRef, errs []string) (*DestinationEffect, error) {
	if summary == "" {
		return nil, validationErrorf("destination effect requires a summary")
	}
	if dest == (DestinationRef{}) {
		return nil, validationErrorf("destination effect requires a destination ref")
	}

	effect := &DestinationEffect{
		Type:           typ,
		Summary:        summary,
		OriginRefs:     make([]OriginRef, len(origins)),
		DestinationRef: dest,
		Errors:         make([]string, len(errs)),
	}
	copy(effect.OriginRefs, origins)
	copy(effect.Errors, errs)
	return effect, nil
}
