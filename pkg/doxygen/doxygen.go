// Package doxygen turns the raw text of a documentation block into structured
// Doxygen fields.
package doxygen

import (
	"regexp"
	"strings"
)

// Comment is a parsed documentation block
type Comment struct {
	Brief      string            `json:"brief,omitempty" yaml:"brief,omitempty" msgpack:"brief,omitempty"`
	Detailed   string            `json:"detailed,omitempty" yaml:"detailed,omitempty" msgpack:"detailed,omitempty"`
	Params     map[string]string `json:"params,omitempty" yaml:"params,omitempty" msgpack:"params,omitempty"`
	Returns    string            `json:"returns,omitempty" yaml:"returns,omitempty" msgpack:"returns,omitempty"`
	Throws     []string          `json:"throws,omitempty" yaml:"throws,omitempty" msgpack:"throws,omitempty"`
	Since      string            `json:"since,omitempty" yaml:"since,omitempty" msgpack:"since,omitempty"`
	Deprecated string            `json:"deprecated,omitempty" yaml:"deprecated,omitempty" msgpack:"deprecated,omitempty"`
	See        []string          `json:"see,omitempty" yaml:"see,omitempty" msgpack:"see,omitempty"`
	CustomTags map[string]string `json:"tags,omitempty" yaml:"tags,omitempty" msgpack:"tags,omitempty"`
}

// markers strip comment delimiters from a single line, in order.
var markers = []*regexp.Regexp{
	regexp.MustCompile(`^/\*[*!<]?<?`), // /** /*! /*< /**<
	regexp.MustCompile(`^//[/!]?<?`),   // /// //! //< ///<
	regexp.MustCompile(`\*/$`),
	regexp.MustCompile(`^\*\s?`),
}

// Clean removes comment markers and leading asterisks and drops leading blank
// lines.
func Clean(raw string) string {
	var result strings.Builder
	for _, line := range strings.Split(raw, "\n") {
		line = cleanLine(line)
		if line == "" && result.Len() == 0 {
			continue
		}
		if result.Len() > 0 {
			result.WriteString("\n")
		}
		result.WriteString(line)
	}
	return strings.TrimRight(result.String(), "\n")
}

func cleanLine(line string) string {
	line = strings.TrimSpace(line)
	for _, re := range markers {
		line = strings.TrimSpace(re.ReplaceAllString(line, ""))
	}
	return line
}

// Parse extracts the brief description, the detailed description and the
// tags of a documentation block. It returns nil for an empty block.
func Parse(raw string) *Comment {
	cleaned := Clean(raw)
	if cleaned == "" {
		return nil
	}

	doc := &Comment{}
	var currentTag string
	var currentContent []string

	for _, line := range strings.Split(cleaned, "\n") {
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "@") || strings.HasPrefix(line, "\\") {
			if currentTag != "" {
				doc.setTag(currentTag, strings.Join(currentContent, " "))
			}
			parts := strings.SplitN(line[1:], " ", 2)
			currentTag = parts[0]
			currentContent = currentContent[:0]
			if len(parts) > 1 {
				currentContent = append(currentContent, strings.TrimSpace(parts[1]))
			}
			continue
		}
		if currentTag != "" {
			currentContent = append(currentContent, line)
			continue
		}
		switch {
		case doc.Brief == "":
			doc.Brief = line
		case doc.Detailed == "":
			doc.Detailed = line
		default:
			doc.Detailed += " " + line
		}
	}
	if currentTag != "" {
		doc.setTag(currentTag, strings.Join(currentContent, " "))
	}
	return doc
}

func (doc *Comment) setTag(tag, content string) {
	switch tag {
	case "brief":
		doc.Brief = content
	case "details", "detailed":
		doc.Detailed = content
	case "param", "tparam":
		parts := strings.SplitN(content, " ", 2)
		if len(parts) == 2 {
			if doc.Params == nil {
				doc.Params = make(map[string]string)
			}
			doc.Params[parts[0]] = parts[1]
		}
	case "return", "returns":
		doc.Returns = content
	case "throw", "throws", "exception":
		doc.Throws = append(doc.Throws, content)
	case "since":
		doc.Since = content
	case "deprecated":
		doc.Deprecated = content
	case "see", "sa":
		doc.See = append(doc.See, content)
	default:
		if doc.CustomTags == nil {
			doc.CustomTags = make(map[string]string)
		}
		doc.CustomTags[tag] = content
	}
}

// SplitPath splits a C++ qualified name into parts. The global scope "::"
// and the empty string yield no parts.
func SplitPath(path string) []string {
	path = strings.Trim(path, ":")
	if path == "" {
		return []string{}
	}
	return strings.Split(path, "::")
}
