package pubmed

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/adapters/sources"
	apperrors "github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/pkg/errors"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/pkg/normalize"
)

const (
	searchTerm         = `(health[Title/Abstract] OR medical[Title/Abstract] OR disease[Title/Abstract]) AND ("last 30 days"[PDat])`
	descriptionMaxLen  = 1000
	articleURLTemplate = "https://pubmed.ncbi.nlm.nih.gov/%s/"
)

// Article is one literature item assembled from the PubMed E-utilities.
type Article struct {
	Title           string
	Description     string
	URL             string
	SourceName      string
	PublicationDate time.Time
}

type searchResult struct {
	ESearchResult struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

type articleSet struct {
	XMLName  xml.Name        `xml:"PubmedArticleSet"`
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	Citation struct {
		PMID    string `xml:"PMID"`
		Article struct {
			Title    string `xml:"ArticleTitle"`
			Abstract struct {
				Texts []string `xml:"AbstractText"`
			} `xml:"Abstract"`
			Journal struct {
				Title string `xml:"Title"`
				Issue struct {
					PubDate struct {
						Year  string `xml:"Year"`
						Month string `xml:"Month"`
						Day   string `xml:"Day"`
					} `xml:"PubDate"`
				} `xml:"JournalIssue"`
			} `xml:"Journal"`
		} `xml:"Article"`
	} `xml:"MedlineCitation"`
}

// Client fetches literature via the NCBI E-utilities search and fetch
// endpoints.
type Client struct {
	baseURL    string
	limit      int
	now        func() time.Time
	httpClient *http.Client
}

// NewClient creates a new PubMed client.
func NewClient(baseURL string, limit int) *Client {
	if limit <= 0 {
		limit = 20
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		limit:   limit,
		now:     time.Now,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Fetch searches recent medical articles and retrieves their details.
// An empty search result is not an error.
func (c *Client) Fetch(ctx context.Context) ([]Article, []sources.RowIssue, error) {
	ids, err := c.search(ctx)
	if err != nil {
		return nil, nil, err
	}
	if len(ids) == 0 {
		return []Article{}, nil, nil
	}

	body, err := c.fetchDetails(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	return c.parseArticles(body)
}

func (c *Client) search(ctx context.Context) ([]string, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("term", searchTerm)
	params.Set("retmax", strconv.Itoa(c.limit))
	params.Set("sort", "pub_date")
	params.Set("retmode", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/esearch.fcgi?"+params.Encode(), nil)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build search request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to search articles", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewExternalError(fmt.Sprintf("article search returned status %d", resp.StatusCode), nil)
	}

	var result searchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, apperrors.NewExternalError("failed to decode search response", err)
	}

	return result.ESearchResult.IDList, nil
}

func (c *Client) fetchDetails(ctx context.Context, ids []string) ([]byte, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("id", strings.Join(ids, ","))
	params.Set("retmode", "xml")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/efetch.fcgi?"+params.Encode(), nil)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build fetch request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to fetch article details", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewExternalError(fmt.Sprintf("article fetch returned status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to read article details", err)
	}

	return body, nil
}

func (c *Client) parseArticles(body []byte) ([]Article, []sources.RowIssue, error) {
	var set articleSet
	if err := xml.Unmarshal(body, &set); err != nil {
		return nil, nil, apperrors.NewExternalError("failed to parse article details", err)
	}

	var articles []Article
	var issues []sources.RowIssue

	for i, a := range set.Articles {
		pmid := strings.TrimSpace(a.Citation.PMID)
		if pmid == "" {
			issues = append(issues, sources.RowIssue{Index: i, Reason: "article has no PMID"})
			continue
		}

		title := strings.TrimSpace(a.Citation.Article.Title)
		if title == "" {
			title = "No title"
		}

		// Abstract fragments are joined; the title stands in when the
		// abstract is missing entirely.
		var fragments []string
		for _, text := range a.Citation.Article.Abstract.Texts {
			if t := strings.TrimSpace(text); t != "" {
				fragments = append(fragments, t)
			}
		}
		description := strings.Join(fragments, " ")
		if description == "" {
			description = title
		}
		description = normalize.Truncate(description, descriptionMaxLen)

		source := strings.TrimSpace(a.Citation.Article.Journal.Title)
		if source == "" {
			source = "PubMed"
		}

		articles = append(articles, Article{
			Title:           title,
			Description:     description,
			URL:             fmt.Sprintf(articleURLTemplate, pmid),
			SourceName:      source,
			PublicationDate: c.publicationDate(a),
		})
	}

	return articles, issues, nil
}

func (c *Client) publicationDate(a pubmedArticle) time.Time {
	pubDate := a.Citation.Article.Journal.Issue.PubDate
	if pubDate.Year == "" {
		return c.now().UTC()
	}

	month := normalize.MonthNumber(pubDate.Month)
	day := pubDate.Day
	if day == "" {
		day = "01"
	} else if len(day) == 1 {
		day = "0" + day
	}

	t, err := time.Parse("2006-01-02", fmt.Sprintf("%s-%s-%s", pubDate.Year, month, day))
	if err != nil {
		return c.now().UTC()
	}
	return t
}
