package domain

import "strings"

// Source identifies the job board a posting was fetched from.
type Source string

const (
	SourceSeek    Source = "Seek"
	SourceIndeed  Source = "Indeed"
	SourceMonster Source = "Monster"
	SourceAdzuna  Source = "Adzuna"
)

// Sources lists every known source in canonical (invocation) order.
var Sources = []Source{SourceSeek, SourceIndeed, SourceMonster, SourceAdzuna}

const (
	NoTitle       = "No title found"
	NoDescription = "No description found"
)

func (s Source) Valid() bool {
	for _, k := range Sources {
		if k == s {
			return true
		}
	}
	return false
}

// ParseSource matches a source name case-insensitively.
func ParseSource(name string) (Source, bool) {
	for _, k := range Sources {
		if strings.EqualFold(string(k), strings.TrimSpace(name)) {
			return k, true
		}
	}
	return "", false
}

// SourceRank returns the canonical position of s, or len(Sources) if unknown.
func SourceRank(s Source) int {
	for i, k := range Sources {
		if k == s {
			return i
		}
	}
	return len(Sources)
}

type JobPosting struct {
	Source      Source `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Empty reports whether neither field was located in the source markup.
func (j JobPosting) Empty() bool {
	return (j.Title == "" || j.Title == NoTitle) && (j.Description == "" || j.Description == NoDescription)
}
