package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/lead-quality-cli/internal/model"
)

// Analyze builds the full report from an immutable contact slice. Each table
// is computed independently, so they fan out across goroutines; every builder
// writes a disjoint set of Analysis fields and the slice itself is never
// mutated.
func Analyze(ctx context.Context, contacts []model.Contact) (*model.Analysis, error) {
	start := time.Now()

	a := &model.Analysis{TotalContacts: len(contacts)}
	for _, c := range contacts {
		if c.HasEmail {
			a.WithEmail++
		}
		if c.HasPhone {
			a.WithPhone++
		}
		if c.HasCourse {
			a.WithCourse++
		}
		if c.HasCompany {
			a.WithCompany++
		}
	}

	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.LeadStatus = LeadStatusDistribution(contacts)
		a.StatusMapping = StatusMapping(contacts)
		return nil
	})
	g.Go(func() error {
		a.Courses = CourseDistribution(contacts)
		a.QualityPivot = BuildQualityPivot(contacts)
		return nil
	})
	g.Go(func() error {
		a.Reasons = ReasonDistributions(contacts)
		return nil
	})
	g.Go(func() error {
		a.Countries = CountryDistribution(contacts)
		a.Industries = IndustryDistribution(contacts)
		a.LifecycleStages = LifecycleStageDistribution(contacts)
		return nil
	})
	g.Go(func() error {
		a.PhoneCountries = PhoneCountryDistribution(contacts)
		a.MonthlyTrend = MonthlyTrend(contacts)
		return nil
	})
	g.Go(func() error {
		a.Completeness = Completeness(contacts)
		a.EmailIssues = EmailIssues(contacts)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	zap.L().Debug("pipeline: analysis complete",
		zap.Int("contacts", len(contacts)),
		zap.Int("courses", len(a.Courses)),
		zap.Int("quality_rows", len(a.QualityPivot)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return a, nil
}
