package changelog

// VersionIndex is the ordered list of version-data filenames read from the
// manifest. Order is significant: it is the display order of the changelog.
type VersionIndex []string

// manifest mirrors the JSON body of versions-index.json.
// VersionFiles is a pointer so a missing field can be told apart from an
// empty list.
type manifest struct {
	VersionFiles *[]string `json:"versionFiles"`
}

// VersionRecord is a single changelog entry loaded from one version file.
// Date is display text and is never parsed.
type VersionRecord struct {
	Version string       `json:"version" yaml:"version"`
	Date    string       `json:"date" yaml:"date"`
	Updates []UpdateItem `json:"updates" yaml:"updates"`
}

// UpdateItem is one line of a version's update list.
type UpdateItem struct {
	Text string `json:"text" yaml:"text"`
	Type Tag    `json:"type,omitempty" yaml:"type,omitempty"`
}

// Tag classifies an update item. The empty Tag means no classifier.
type Tag string

const (
	TagFeature     Tag = "feature"
	TagBugfix      Tag = "bugfix"
	TagImprovement Tag = "improvement"
)

// tagLabels maps the closed tag set to the labels shown on the page.
var tagLabels = map[Tag]string{
	TagFeature:     "Yeni",
	TagBugfix:      "Bugfix",
	TagImprovement: "Deneysel",
}

// TagLabel returns the display label for tag. Unknown and empty tags map to "".
func TagLabel(tag Tag) string {
	return tagLabels[tag]
}

// ValidTags returns the known tags in display order.
func ValidTags() []Tag {
	return []Tag{TagFeature, TagBugfix, TagImprovement}
}

// IsKnown reports whether t is one of the known tags.
func (t Tag) IsKnown() bool {
	_, ok := tagLabels[t]
	return ok
}

// HasTag reports whether the item carries a classifier.
func (u UpdateItem) HasTag() bool {
	return u.Type != ""
}
