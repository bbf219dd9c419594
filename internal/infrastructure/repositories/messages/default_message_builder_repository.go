package messages

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rios0rios0/jobreporter/internal/domain/entities"
	"github.com/rios0rios0/jobreporter/internal/domain/repositories"
)

const (
	defaultPrefix      = "chore(deps)"
	truncatedNotice    = "\n\n...(truncated)"
	encodingUTF16      = "utf_16"
	maxBMPRune         = 0xFFFF
	surrogatePairUnits = 2
)

// DefaultMessageBuilderRepository renders short conventional-commit style
// messages. It stands in for the full message generator when the job does
// not provide its own text.
type DefaultMessageBuilderRepository struct{}

var _ repositories.MessageBuilderRepository = (*DefaultMessageBuilderRepository)(nil)

// NewDefaultMessageBuilderRepository creates a DefaultMessageBuilderRepository.
func NewDefaultMessageBuilderRepository() *DefaultMessageBuilderRepository {
	return &DefaultMessageBuilderRepository{}
}

// Build renders the title, body and commit message for the request.
func (b *DefaultMessageBuilderRepository) Build(req entities.MessageRequest) (*entities.GeneratedMessage, error) {
	if len(req.Dependencies) == 0 {
		return nil, errors.New("no dependencies to describe")
	}

	title := fmt.Sprintf("%s: %s", prefix(req), subject(req))
	body := truncate(description(req), req.PRMessageMaxLength, req.PRMessageEncoding)

	return &entities.GeneratedMessage{
		CommitMessage: title + "\n\n" + body,
		Title:         title,
		Body:          body,
	}, nil
}

func prefix(req entities.MessageRequest) string {
	if req.CommitMessageOptions == nil || req.CommitMessageOptions.Prefix == "" {
		return defaultPrefix
	}
	p := req.CommitMessageOptions.Prefix
	if req.CommitMessageOptions.IncludeScope && !strings.Contains(p, "(") {
		p += "(deps)"
	}
	return p
}

func subject(req entities.MessageRequest) string {
	if req.DependencyGroup != nil {
		return fmt.Sprintf(
			"bump the %s group with %d update(s)",
			req.DependencyGroup.Name, len(req.Dependencies),
		)
	}

	dep := req.Dependencies[0]
	if len(req.Dependencies) > 1 {
		names := make([]string, 0, len(req.Dependencies))
		for _, d := range req.Dependencies {
			names = append(names, d.Name)
		}
		return "bump " + strings.Join(names, ", ")
	}
	if dep.Removed {
		return fmt.Sprintf("remove %s", dep.Name)
	}
	if dep.PreviousVersion == "" {
		return fmt.Sprintf("bump %s to %s", dep.Name, dep.Version)
	}
	return fmt.Sprintf("bump %s from %s to %s", dep.Name, dep.PreviousVersion, dep.Version)
}

func description(req entities.MessageRequest) string {
	var sb strings.Builder
	sb.WriteString("Updates the following dependencies")
	if req.Source.Directory != "" {
		sb.WriteString(fmt.Sprintf(" in `%s`", req.Source.Directory))
	}
	sb.WriteString(":\n\n")

	for _, dep := range req.Dependencies {
		switch {
		case dep.Removed:
			sb.WriteString(fmt.Sprintf("- `%s` removed\n", dep.Name))
		case dep.PreviousVersion == "":
			sb.WriteString(fmt.Sprintf("- `%s` set to `%s`\n", dep.Name, dep.Version))
		default:
			sb.WriteString(fmt.Sprintf(
				"- `%s` from `%s` to `%s` (%s)\n",
				dep.Name, dep.PreviousVersion, dep.Version, dep.UpdateType(),
			))
		}
	}

	if len(req.IgnoreConditions) > 0 {
		sb.WriteString(fmt.Sprintf("\n%d ignore condition(s) applied.\n", len(req.IgnoreConditions)))
	}

	return strings.TrimRight(sb.String(), "\n")
}

// truncate shortens the body so its encoded length fits in maxLength.
// Length counts UTF-16 code units when the encoding is utf_16, runes otherwise.
func truncate(body string, maxLength int, encoding string) string {
	if maxLength <= 0 || encodedLength(body, encoding) <= maxLength {
		return body
	}

	limit := maxLength - encodedLength(truncatedNotice, encoding)
	if limit < 0 {
		return cut(truncatedNotice, maxLength, encoding)
	}
	return cut(body, limit, encoding) + truncatedNotice
}

// cut keeps the longest prefix of text whose encoded length fits in limit.
func cut(text string, limit int, encoding string) string {
	var sb strings.Builder
	used := 0
	for _, r := range text {
		cost := runeLength(r, encoding)
		if used+cost > limit {
			break
		}
		sb.WriteRune(r)
		used += cost
	}
	return sb.String()
}

func encodedLength(text, encoding string) int {
	length := 0
	for _, r := range text {
		length += runeLength(r, encoding)
	}
	return length
}

func runeLength(r rune, encoding string) int {
	if encoding == encodingUTF16 && r > maxBMPRune {
		return surrogatePairUnits
	}
	return 1
}
