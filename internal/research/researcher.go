package research

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/akm592/coldreach/internal/types"
)

// ErrUnavailable is returned by providers when a lookup cannot be answered.
// The researcher tolerates it fragment by fragment; it is never fatal.
var ErrUnavailable = errors.New("research provider unavailable")

// Provider answers a single research query with free text.
type Provider interface {
	Lookup(ctx context.Context, query string) (string, error)
}

// PageReader retrieves readable text from a company web page.
type PageReader interface {
	ReadPage(ctx context.Context, url string) (string, error)
}

// NewsReader retrieves recent news fragments for a company.
type NewsReader interface {
	CompanyNews(ctx context.Context, company string) ([]types.Fragment, error)
}

// queryLimit bounds concurrent provider lookups inside one Research call.
// The pass loop itself stays sequential; this fan-out is internal to the
// blocking research step.
const queryLimit = 4

// plannedQuery is one slot in the research plan.
type plannedQuery struct {
	category    types.FragmentCategory
	sourceClass string
	query       string
	fallback    string
}

// queryPlan returns the structured query set for a company. Slot order is
// fixed: results land in plan order regardless of completion order, so a
// research document is deterministic for identical provider answers.
func queryPlan(company string) []plannedQuery {
	return []plannedQuery{
		{types.CategoryHiring, SourceCareerPage,
			fmt.Sprintf("entry level software engineer openings at %s", company),
			fmt.Sprintf("software engineer careers at %s", company)},
		{types.CategoryHiring, SourceGeneralSearch,
			fmt.Sprintf("Does %s have a university graduate program or internships?", company), ""},
		{types.CategoryCulture, SourceOfficialWebsite,
			fmt.Sprintf("What are %s's mission and company values?", company), ""},
		{types.CategoryCulture, SourceGlassdoor,
			fmt.Sprintf("employee reviews for %s", company), ""},
		{types.CategoryTech, SourceEngineeringBlog,
			fmt.Sprintf("What is the tech stack at %s?", company), ""},
		{types.CategoryTech, SourceEngineeringBlog,
			fmt.Sprintf("%s engineering blog highlights", company), ""},
		{types.CategoryBusiness, SourceNewsArticle,
			fmt.Sprintf("latest news about %s in the past month", company),
			fmt.Sprintf("latest news about %s", company)},
		{types.CategoryBusiness, SourceGeneralSearch,
			fmt.Sprintf("main competitors of %s", company), ""},
	}
}

// websiteQuery discovers the official site so the page reader can pull
// culture content directly from it.
func websiteQuery(company string) string {
	return fmt.Sprintf("What is the official website for %s?", company)
}

var urlPattern = regexp.MustCompile(`https?://[^\s"')\]]+`)

// Request identifies one research target.
type Request struct {
	Company string
	// ReferralName, when set, yields a maximal-relevance network fragment.
	ReferralName    string
	ReferralCompany string
}

// Researcher runs the query plan against a provider and optional page/news
// sources, producing a scored research document.
type Researcher struct {
	provider Provider
	pages    PageReader // optional
	news     NewsReader // optional
	now      func() time.Time
}

// Option configures a Researcher.
type Option func(*Researcher)

// WithPageReader enables direct company-page reading.
func WithPageReader(p PageReader) Option {
	return func(r *Researcher) { r.pages = p }
}

// WithNewsReader enables the news-feed source.
func WithNewsReader(n NewsReader) Option {
	return func(r *Researcher) { r.news = n }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Researcher) { r.now = now }
}

// NewResearcher builds a researcher over the given provider.
func NewResearcher(provider Provider, opts ...Option) *Researcher {
	r := &Researcher{provider: provider, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Research gathers a full research document for the request. Individual
// query failures degrade to missing fragments; the error return is non-nil
// only when the provider answered nothing at all, which callers treat as
// research failure for that contact.
func (r *Researcher) Research(ctx context.Context, req Request) (*types.ResearchDocument, error) {
	now := r.now()
	plan := queryPlan(req.Company)

	// One slot per planned query plus one for the website answer.
	answers := make([]string, len(plan))
	var websiteAnswer string

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(queryLimit)

	for i := range plan {
		g.Go(func() error {
			answers[i] = r.runQuery(gctx, plan[i].query, plan[i].fallback)
			return nil
		})
	}
	g.Go(func() error {
		websiteAnswer = r.runQuery(gctx, websiteQuery(req.Company), "")
		return nil
	})
	// Workers never return errors; Wait only surfaces context cancellation.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	doc := &types.ResearchDocument{Company: req.Company, CapturedAt: now}
	for i, pq := range plan {
		if answers[i] == "" {
			continue
		}
		frag := NewFragment(answers[i], "", pq.sourceClass, pq.query, now)
		doc.Fragments.Append(pq.category, frag)
	}

	if websiteAnswer != "" {
		frag := NewFragment(websiteAnswer, "", SourceOfficialWebsite, websiteQuery(req.Company), now)
		doc.Fragments.Append(types.CategoryBusiness, frag)
		r.readCompanyPage(ctx, doc, websiteAnswer, now)
	}

	if r.news != nil {
		newsFrags, err := r.news.CompanyNews(ctx, req.Company)
		if err != nil {
			log.Printf("[RESEARCH] news source failed for %s: %v", req.Company, err)
		}
		for _, f := range newsFrags {
			doc.Fragments.Append(types.CategoryBusiness, f)
		}
	}

	if req.ReferralName != "" {
		data := fmt.Sprintf("A referral pathway exists: %s", req.ReferralName)
		if req.ReferralCompany != "" {
			data = fmt.Sprintf("%s (via %s)", data, req.ReferralCompany)
		}
		doc.Fragments.Append(types.CategoryNetwork, types.Fragment{
			Data:                     data,
			SourceClass:              SourceLinkedIn,
			CapturedAt:               now,
			SourceCredibility:        SourceCredibility(SourceLinkedIn),
			TemporalScore:            1.0,
			PersonalizationRelevance: types.MaxRelevance,
		})
	}

	if doc.Fragments.Count() == 0 {
		return nil, fmt.Errorf("research for %s: %w", req.Company, ErrUnavailable)
	}
	return doc, nil
}

// runQuery performs one provider lookup with an optional fallback query.
// All failures collapse to "", logged; a single dead query never aborts
// the document.
func (r *Researcher) runQuery(ctx context.Context, query, fallback string) string {
	answer, err := r.provider.Lookup(ctx, query)
	if err != nil || unusable(answer) {
		if fallback == "" {
			if err != nil {
				log.Printf("[RESEARCH] query failed: %q: %v", query, err)
			}
			return ""
		}
		log.Printf("[RESEARCH] primary query failed, trying fallback: %q", fallback)
		answer, err = r.provider.Lookup(ctx, fallback)
		if err != nil || unusable(answer) {
			return ""
		}
	}
	return strings.TrimSpace(answer)
}

// readCompanyPage pulls culture text straight from the official site when
// the website answer contains a URL and a page reader is configured.
func (r *Researcher) readCompanyPage(ctx context.Context, doc *types.ResearchDocument, websiteAnswer string, now time.Time) {
	if r.pages == nil {
		return
	}
	siteURL := urlPattern.FindString(websiteAnswer)
	if siteURL == "" {
		return
	}
	text, err := r.pages.ReadPage(ctx, siteURL)
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			log.Printf("[RESEARCH] page read failed for %s: %v", siteURL, err)
		}
		return
	}
	frag := NewFragment(text, siteURL, SourceOfficialWebsite, "company website content", now)
	doc.Fragments.Append(types.CategoryCulture, frag)
}

// unusable filters provider non-answers.
func unusable(answer string) bool {
	trimmed := strings.TrimSpace(answer)
	return trimmed == "" || strings.Contains(trimmed, "Unable to answer")
}
