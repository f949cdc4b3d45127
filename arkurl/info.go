package arkurl

import "strconv"

// Info represents the information extracted from a DSP ARK identifier.
// It is an immutable value object: it is produced by a Parser, never
// mutated, and consumed by the redirect resolution engine.
//
// Optional fields use the empty string for absence. Segments are
// non-empty by grammar, so the encoding is unambiguous.
type Info struct {
	// Version is the ARK URL version: 0 (legacy) or 1 (current).
	Version uint32

	// ProjectID is the 4-character hexadecimal project shortcode, or ""
	// for a top-level identifier. Legacy identifiers carry it uppercased.
	ProjectID string

	// ResourceID is the unescaped resource segment without its check
	// digit, or "" for a project-level identifier.
	ResourceID string

	// ValueID is the unescaped value segment without its check digit.
	// It is only ever set when ResourceID is set, and never for legacy
	// identifiers.
	ValueID string

	// Timestamp is the raw timestamp token as it appeared in the
	// identifier, or "" if absent.
	Timestamp string
}

// IsProjectLevel reports whether the identifier addresses a project
// (or the top-level object, when ProjectID is also empty).
func (i Info) IsProjectLevel() bool {
	return i.ResourceID == ""
}

// IsResourceLevel reports whether the identifier addresses a resource
// rather than one of its values.
func (i Info) IsResourceLevel() bool {
	return i.ResourceID != "" && i.ValueID == ""
}

// IsValueLevel reports whether the identifier addresses a value.
func (i Info) IsValueLevel() bool {
	return i.ValueID != ""
}

// HasTimestamp reports whether the identifier carries a timestamp.
func (i Info) HasTimestamp() bool {
	return i.Timestamp != ""
}

// IsVersion0 reports whether this is a legacy (version 0) identifier.
func (i Info) IsVersion0() bool {
	return i.Version == 0
}

// NormalizedTimestamp returns the timestamp in the version 1 format.
// Legacy timestamps are date-only and get a midnight time appended;
// version 1 timestamps are returned unchanged.
func (i Info) NormalizedTimestamp() string {
	if i.Version == 0 && i.Timestamp != "" {
		return i.Timestamp + "T000000Z"
	}
	return i.Timestamp
}

// TemplateDict returns the substitution map for redirect templates,
// containing every non-absent field plus the URL version.
func (i Info) TemplateDict() map[string]string {
	dict := map[string]string{
		"url_version": strconv.FormatUint(uint64(i.Version), 10),
	}

	if i.ProjectID != "" {
		dict["project_id"] = i.ProjectID
	}
	if i.ResourceID != "" {
		dict["resource_id"] = i.ResourceID
	}
	if i.ValueID != "" {
		dict["value_id"] = i.ValueID
	}
	if i.Timestamp != "" {
		dict["timestamp"] = i.Timestamp
	}

	return dict
}
