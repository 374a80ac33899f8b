package fetch

import (
	"net/url"
	"strings"
)

// Board is a job board whose page layout is known.
type Board string

// Known job boards.
const (
	BoardGreenhouse Board = "greenhouse"
	BoardLever      Board = "lever"
	BoardWorkday    Board = "workday"
	BoardGeneric    Board = "generic"
)

type boardLayout struct {
	hosts   []string
	content []string
	noise   []string
}

var layouts = map[Board]boardLayout{
	BoardGreenhouse: {
		hosts:   []string{"greenhouse.io"},
		content: []string{".job__description.body", ".job__description", ".job-description__content", "#content", ".job-post-container"},
		noise:   []string{".application--wrapper", ".voluntary-self-id", "#usa_self_id_section", ".post-apply"},
	},
	BoardLever: {
		hosts:   []string{"lever.co"},
		content: []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"},
		noise:   []string{".apply-section", ".lever-application-form", ".posting-apply"},
	},
	BoardWorkday: {
		hosts:   []string{"myworkdayjobs.com", "workday.com"},
		content: []string{"[data-automation-id='jobDescription']", ".gwt-HTML", ".job-description"},
		noise:   []string{"[data-automation-id='applyButton']", ".application-section"},
	},
	BoardGeneric: {
		content: []string{
			".job-description", ".job-content", "#job-description", "#job-content",
			".posting-content", ".job-details", "[data-testid='job-description']",
			"main", "article", ".content", "#content",
		},
	},
}

// Application forms, EEO statements and share widgets appear on every board.
var commonNoise = []string{
	"form", "#application-form", ".application-form", ".apply-button-container",
	".eeo-statement", ".eeo-section", ".voluntary-disclosure", ".self-identification",
	".social-share", ".share-buttons", ".cookie-consent", ".gdpr-notice",
}

// DetectBoard identifies the job board hosting rawURL.
func DetectBoard(rawURL string) Board {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return BoardGeneric
	}
	host := strings.ToLower(parsed.Hostname())
	for _, b := range []Board{BoardGreenhouse, BoardLever, BoardWorkday} {
		for _, h := range layouts[b].hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return b
			}
		}
	}
	return BoardGeneric
}

// ContentSelectors returns the selectors tried, in order, for the posting body on b.
func ContentSelectors(b Board) []string {
	l, ok := layouts[b]
	if !ok {
		l = layouts[BoardGeneric]
	}
	return append([]string(nil), l.content...)
}

// NoiseSelectors returns the selectors removed from pages on b.
func NoiseSelectors(b Board) []string {
	return append(append([]string(nil), commonNoise...), layouts[b].noise...)
}
