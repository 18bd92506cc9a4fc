package mediaparse

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/creatorlens/backend/domains/media"
)

// PlaceholderImage stands in for results that carry no usable artwork.
const PlaceholderImage = "https://via.placeholder.com/320x180?text=No+Image"

// Defaults for descriptive fields the provider left out. Only the
// identity-bearing field (link/id/url) is mandatory; everything else
// falls back instead of dropping the record.
const (
	DefaultTitle     = "Untitled"
	DefaultChannel   = "Unknown"
	DefaultViews     = "0"
	DefaultPublished = "Recently"
	DefaultDuration  = "N/A"
)

// str returns the first non-empty scalar among the given paths.
// Objects and arrays are skipped so "thumbnail" only matches when the
// provider sent it as a plain URL string.
func str(item gjson.Result, paths ...string) string {
	for _, p := range paths {
		r := item.Get(p)
		if r.Type == gjson.String || r.Type == gjson.Number {
			if s := strings.TrimSpace(r.String()); s != "" {
				return s
			}
		}
	}
	return ""
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// videoCandidates collects raw video items from every location SerpAPI has
// been observed to use. No single location is guaranteed present, so the
// union of all of them is taken, in a fixed probing order.
func videoCandidates(payload []byte) []gjson.Result {
	data := gjson.ParseBytes(payload)
	var candidates []gjson.Result

	appendArray := func(r gjson.Result) {
		if r.IsArray() {
			candidates = append(candidates, r.Array()...)
		}
	}

	appendArray(data.Get("video_results"))
	appendArray(data.Get("videos"))

	// organic_results can hold inline video lists, or be video-shaped
	// themselves when they point at youtube.
	data.Get("organic_results").ForEach(func(_, item gjson.Result) bool {
		appendArray(item.Get("video_results"))
		appendArray(item.Get("inline_videos"))
		link := item.Get("link").String()
		if strings.Contains(link, "youtube.com") || strings.Contains(link, "youtu.be") {
			candidates = append(candidates, item)
		}
		return true
	})

	appendArray(data.Get("results"))
	appendArray(data.Get("items"))

	return candidates
}

// videoIdentity derives the record id from the most stable field present.
// Items with no identity at all are dropped by the caller; ids are never
// invented, that would break dedup and cache determinism.
func videoIdentity(item gjson.Result) string {
	return str(item, "link", "video_id", "id", "url")
}

// NormalizeVideos turns a raw search payload into canonical video records:
// probe, extract with fallbacks, drop identity-less items, dedup by id
// keeping first-seen order.
func NormalizeVideos(payload []byte) []media.Record {
	candidates := videoCandidates(payload)

	seen := make(map[string]struct{}, len(candidates))
	records := make([]media.Record, 0, len(candidates))

	for _, item := range candidates {
		id := videoIdentity(item)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		records = append(records, media.Record{
			ID:            id,
			Title:         orDefault(str(item, "title", "name", "snippet"), DefaultTitle),
			ChannelName:   orDefault(str(item, "channel.name", "channel", "uploader", "source"), DefaultChannel),
			ImageUrl:      orDefault(str(item, "thumbnail.static", "thumbnail", "image", "thumbnailUrl", "thumbnail_url"), PlaceholderImage),
			Views:         orDefault(str(item, "views", "view_count", "formatted_views"), DefaultViews),
			PublishedDate: orDefault(str(item, "published_date", "published_time", "date"), DefaultPublished),
			Duration:      orDefault(str(item, "length", "duration", "video_length"), DefaultDuration),
			Link:          str(item, "link", "url"),
			Description:   str(item, "description", "snippet"),
			Type:          media.KindVideo,
		})
	}

	return records
}

// NormalizeImages handles the google_images payload shape. Identity comes
// from the result link or image URLs; positional indexes are not stable
// across calls and are never used as ids.
func NormalizeImages(payload []byte) []media.Record {
	data := gjson.ParseBytes(payload)
	results := data.Get("images_results")
	if !results.IsArray() {
		return []media.Record{}
	}

	items := results.Array()
	seen := make(map[string]struct{}, len(items))
	records := make([]media.Record, 0, len(items))

	for _, item := range items {
		id := str(item, "link", "original", "source_url", "thumbnail")
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		records = append(records, media.Record{
			ID:           id,
			Title:        orDefault(str(item, "title"), DefaultTitle),
			ImageUrl:     orDefault(str(item, "original", "thumbnail"), PlaceholderImage),
			ThumbnailUrl: str(item, "thumbnail", "original"),
			Source:       orDefault(str(item, "source"), DefaultChannel),
			Link:         str(item, "link"),
			SourceUrl:    str(item, "source_url", "link"),
			Type:         media.KindImage,
		})
	}

	return records
}

// NormalizeSuggestions extracts content-idea hits from a plain google
// search payload.
func NormalizeSuggestions(payload []byte) []media.Suggestion {
	data := gjson.ParseBytes(payload)
	results := data.Get("organic_results")
	if !results.IsArray() {
		return []media.Suggestion{}
	}

	items := results.Array()
	suggestions := make([]media.Suggestion, 0, len(items))
	for _, item := range items {
		suggestions = append(suggestions, media.Suggestion{
			Title:   str(item, "title"),
			Snippet: str(item, "snippet"),
			Link:    str(item, "link"),
			Source:  str(item, "source", "displayed_link"),
		})
	}
	return suggestions
}
