package application

import (
	"context"
	"fmt"
	"strings"

	"warisin/internal/domain"
	"warisin/internal/ports"
)

const (
	SourceAI       = "ai"
	SourceTemplate = "template"
)

type DraftInput struct {
	Title    string
	Category string
	Duration string
	Location string
	Criteria string
}

type Draft struct {
	Description string `json:"description"`
	Source      string `json:"source"`
}

type DescriptionService struct {
	generator ports.TextGenerator
	metrics   ports.Metrics
	logger    ports.Logger
}

// NewDescriptionService accepts a nil generator, in which case every draft
// comes from the template.
func NewDescriptionService(generator ports.TextGenerator, metrics ports.Metrics, logger ports.Logger) *DescriptionService {
	return &DescriptionService{generator: generator, metrics: metricsOrNop(metrics), logger: logger}
}

func (s *DescriptionService) Draft(ctx context.Context, actor Actor, in DraftInput) (Draft, error) {
	if err := requireRole(actor, domain.RoleArtisan); err != nil {
		return Draft{}, err
	}
	if !lengthBetween(in.Title, 1, 200) {
		return Draft{}, domain.ErrInvalidInput
	}
	if s.generator != nil {
		text, err := s.generator.Generate(ctx, buildPrompt(in))
		text = strings.TrimSpace(text)
		if err == nil && text != "" {
			s.metrics.DescriptionGenerated(SourceAI)
			return Draft{Description: text, Source: SourceAI}, nil
		}
		s.logger.Warn(ctx, "description generation failed, using template", "error", err)
	}
	s.metrics.DescriptionGenerated(SourceTemplate)
	return Draft{Description: templateDescription(in), Source: SourceTemplate}, nil
}

func buildPrompt(in DraftInput) string {
	var b strings.Builder
	b.WriteString("Write an engaging description, in Indonesian, for an apprenticeship program run by a traditional craft maestro.\n")
	fmt.Fprintf(&b, "Program title: %s\n", in.Title)
	if in.Category != "" {
		fmt.Fprintf(&b, "Craft category: %s\n", in.Category)
	}
	if in.Duration != "" {
		fmt.Fprintf(&b, "Duration: %s\n", in.Duration)
	}
	if in.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", in.Location)
	}
	if in.Criteria != "" {
		fmt.Fprintf(&b, "Applicant criteria: %s\n", in.Criteria)
	}
	b.WriteString("Keep it to three short paragraphs: what participants learn, the cultural heritage behind the craft, and who should apply. Plain text only.")
	return b.String()
}

func templateDescription(in DraftInput) string {
	category := in.Category
	if category == "" {
		category = "kerajinan tradisional"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Program %s mengajak Anda belajar langsung dari maestro %s.", in.Title, category)
	if in.Location != "" {
		fmt.Fprintf(&b, " Kegiatan berlangsung di %s", in.Location)
		if in.Duration != "" {
			fmt.Fprintf(&b, " selama %s", in.Duration)
		}
		b.WriteString(".")
	} else if in.Duration != "" {
		fmt.Fprintf(&b, " Program berlangsung selama %s.", in.Duration)
	}
	b.WriteString("\n\nPeserta akan mempelajari teknik, sejarah, dan nilai budaya di balik setiap karya, sekaligus ikut menjaga warisan ini tetap hidup.")
	if in.Criteria != "" {
		fmt.Fprintf(&b, "\n\nKriteria peserta: %s", in.Criteria)
	}
	return b.String()
}
