package nbtai

import (
	"reflect"
	"testing"
)

func TestCollectURLs_AngleBracket(t *testing.T) {
	_, spans := MaskSpans("Visit <https://example.com/page> now")

	urls := CollectURLs(spans)
	if !reflect.DeepEqual(urls, []string{"https://example.com/page"}) {
		t.Errorf("Expected bare URL, got %v", urls)
	}
}

func TestCollectURLs_MarkdownLink(t *testing.T) {
	_, spans := MaskSpans("Read [the guide](https://docs.example.com/guide)")

	urls := CollectURLs(spans)
	if !reflect.DeepEqual(urls, []string{"https://docs.example.com/guide"}) {
		t.Errorf("Expected link target, got %v", urls)
	}
}

func TestCollectURLs_HTMLAttributes(t *testing.T) {
	_, spans := MaskSpans(`Before <img src="images/plot.png" width="400"> after <a href="https://example.com">`)

	urls := CollectURLs(spans)
	if len(urls) != 2 {
		t.Fatalf("Expected 2 URLs, got %v", urls)
	}

	found := map[string]bool{}
	for _, u := range urls {
		found[u] = true
	}
	if !found["images/plot.png"] || !found["https://example.com"] {
		t.Errorf("Missing expected URLs: %v", urls)
	}
}

func TestCollectURLs_Empty(t *testing.T) {
	_, spans := MaskSpans("No protected spans at all")

	if urls := CollectURLs(spans); len(urls) != 0 {
		t.Errorf("Expected no URLs, got %v", urls)
	}
}
