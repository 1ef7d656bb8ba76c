package web

import (
	"fmt"
	"html/template"
	"net/http"
	"sort"
	"strconv"

	"tangokultura/internal/county"
	"tangokultura/internal/events"
	"tangokultura/internal/logger"
	"tangokultura/internal/models"
)

// eventTypeGroups are the tabs above the listing. "Events" and "Classes"
// narrow the already-listed types client-side the same way the SPA did.
var eventTypeGroups = map[string][]string{
	"All":     nil,
	"Events":  {models.TypeMilonga, models.TypePractice},
	"Classes": {models.TypeClass, models.TypeCourse},
}

type Handler struct {
	EventService *events.EventService
	Logger       *logger.Logger
	tmpl         *template.Template
}

func NewHandler(eventService *events.EventService, log *logger.Logger) *Handler {
	return &Handler{
		EventService: eventService,
		Logger:       log,
		tmpl:         template.Must(template.New("listing").Parse(listingTemplate)),
	}
}

type dateGroup struct {
	Heading string
	Events  []models.EventView
}

type listingPage struct {
	Groups          []dateGroup
	Counties        []string
	County          string
	TypeGroup       string
	TypeGroups      []string
	TotalEvents     int
	UpcomingCourses bool
}

// Listing handles GET /: the server-rendered event list, grouped by
// calendar date with weekday headings.
func (h *Handler) Listing(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	selectedCounty := q.Get("county")
	typeGroup := q.Get("typeGroup")
	if typeGroup == "" {
		typeGroup = "All"
	}

	upcoming := true
	if raw := q.Get("upcomingCourses"); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			upcoming = parsed
		}
	}

	views, err := h.EventService.ListEvents(events.Filters{
		EventType:       "Events",
		County:          selectedCounty,
		UpcomingCourses: upcoming,
	})
	if err != nil {
		h.Logger.Error("WEB", fmt.Sprintf("Listing: %v", err))
		http.Error(w, "Failed to load events", http.StatusInternalServerError)
		return
	}

	if types, ok := eventTypeGroups[typeGroup]; ok && types != nil {
		filtered := views[:0]
		for _, v := range views {
			for _, t := range types {
				if v.TypeEvent == t {
					filtered = append(filtered, v)
					break
				}
			}
		}
		views = filtered
	}

	page := listingPage{
		Groups:          groupByDate(views),
		Counties:        county.Counties(),
		County:          selectedCounty,
		TypeGroup:       typeGroup,
		TypeGroups:      []string{"All", "Events", "Classes"},
		TotalEvents:     len(views),
		UpcomingCourses: upcoming,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.Execute(w, page); err != nil {
		h.Logger.Error("WEB", fmt.Sprintf("Listing: template error: %v", err))
	}
}

// groupByDate buckets the (already sorted) views per calendar day.
func groupByDate(views []models.EventView) []dateGroup {
	byHeading := make(map[string][]models.EventView)
	var order []string
	for _, v := range views {
		key := v.Date.String()
		if _, seen := byHeading[key]; !seen {
			order = append(order, key)
		}
		byHeading[key] = append(byHeading[key], v)
	}
	sort.SliceStable(order, func(i, j int) bool {
		return byHeading[order[i]][0].Date.Before(byHeading[order[j]][0].Date)
	})

	groups := make([]dateGroup, 0, len(order))
	for _, key := range order {
		groups = append(groups, dateGroup{
			Heading: byHeading[key][0].Date.Heading(),
			Events:  byHeading[key],
		})
	}
	return groups
}

const listingTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Tango Kultura - Events</title>
<style>
body { font-family: sans-serif; max-width: 800px; margin: 0 auto; padding: 1rem; color: #1a2b4a; }
h2 { border-bottom: 1px solid #ccc; padding-bottom: 0.3rem; }
.event { margin: 0.6rem 0; padding: 0.6rem; background: #f7f7fb; border-radius: 6px; }
.event .meta { color: #555; font-size: 0.9rem; }
.filters { margin-bottom: 1rem; }
.tabs a { margin-right: 0.8rem; text-decoration: none; }
.tabs a.active { font-weight: bold; text-decoration: underline; }
</style>
</head>
<body>
<h1>Tango Events</h1>
<div class="filters">
<form method="get">
<label>County:
<select name="county" onchange="this.form.submit()">
<option value="All">All</option>
{{- $selected := .County }}
{{- range .Counties }}
<option value="{{ . }}"{{ if eq . $selected }} selected{{ end }}>{{ . }}</option>
{{- end }}
<option value="Unknown"{{ if eq "Unknown" $selected }} selected{{ end }}>Unknown</option>
</select>
</label>
<input type="hidden" name="typeGroup" value="{{ .TypeGroup }}">
</form>
<div class="tabs">
{{- $active := .TypeGroup }}{{ $county := .County }}
{{- range .TypeGroups }}
<a href="?typeGroup={{ . }}&county={{ $county }}"{{ if eq . $active }} class="active"{{ end }}>{{ . }}</a>
{{- end }}
</div>
</div>
{{- if not .Groups }}
<p>No upcoming events{{ if .County }} in {{ .County }}{{ end }}.</p>
{{- end }}
{{- range .Groups }}
<h2>{{ .Heading }}</h2>
{{- range .Events }}
<div class="event">
<strong>{{ .EventName }}</strong> ({{ .TypeEvent }})
<div class="meta">{{ .Starts }}–{{ .Ends }} · {{ .Address }}, {{ .City }} ({{ .County }}) · {{ .Price }}</div>
<div class="meta">{{ .Organizer }}{{ if .EventLink }} · <a href="{{ .EventLink }}">More info</a>{{ end }}</div>
{{- if .Description }}<div>{{ .Description }}</div>{{ end }}
</div>
{{- end }}
{{- end }}
</body>
</html>
`
