package api

// Repository holds the repository description served by the /api endpoint:
// the refs addressing content versions, plus bookmarks, document types, tags,
// search forms, OAuth endpoints, and content experiments.
//
// A Repository is a snapshot. Refresh replaces the client's copy wholesale
// rather than mutating it, so a Repository obtained from a client never
// changes.
type Repository struct {
	Refs          []Ref             `json:"refs"`
	Bookmarks     map[string]string `json:"bookmarks"`
	Types         map[string]string `json:"types"`
	Tags          []string          `json:"tags"`
	Forms         map[string]Form   `json:"forms"`
	OAuthInitiate string            `json:"oauth_initiate"`
	OAuthToken    string            `json:"oauth_token"`
	Experiments   Experiments       `json:"experiments"`
}

// Ref addresses one version of the repository content. Every search request
// carries a ref. The master ref moves each time content is published; release
// refs address future versions and experiment variations address test
// content.
type Ref struct {
	ID          string `json:"id"`
	Ref         string `json:"ref"`
	Label       string `json:"label"`
	IsMasterRef bool   `json:"isMasterRef"`
	ScheduledAt int64  `json:"scheduledAt"`
}

// MasterRef returns the ref holding the latest published content.
func (r *Repository) MasterRef() (Ref, bool) {
	for _, ref := range r.Refs {
		if ref.IsMasterRef {
			return ref, true
		}
	}
	return Ref{}, false
}

// RefFromLabel returns the ref with the given label, such as a release name.
func (r *Repository) RefFromLabel(label string) (Ref, bool) {
	for _, ref := range r.Refs {
		if ref.Label == label {
			return ref, true
		}
	}
	return Ref{}, false
}

// Form describes one search form exposed by the repository. The everything
// form is always present; collections add their own.
type Form struct {
	Name    string               `json:"name"`
	Method  string               `json:"method"`
	Rel     string               `json:"rel"`
	Enctype string               `json:"enctype"`
	Action  string               `json:"action"`
	Fields  map[string]FormField `json:"fields"`
}

// FormField describes one parameter accepted by a search form. Fields marked
// multiple accumulate repeated values instead of replacing them.
type FormField struct {
	Type     string `json:"type"`
	Multiple bool   `json:"multiple"`
	Default  string `json:"default"`
}
