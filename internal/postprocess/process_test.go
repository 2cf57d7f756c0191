package postprocess

import (
	"testing"

	"github.com/notapresent/glommer/internal/extract"
	"github.com/notapresent/glommer/internal/model"
)

func TestProcess_NormalizesResolvesAndDrops(t *testing.T) {
	result := &extract.Result{
		Images: []string{"  /a.png  ", "", "/b.png"},
	}

	got := Process(result, "http://example.com/channel/")

	want := []string{"http://example.com/a.png", "http://example.com/b.png"}
	images := got[model.CategoryImages]
	if len(images) != len(want) {
		t.Fatalf("images = %v, want %v", images, want)
	}
	for i := range want {
		if images[i] != want[i] {
			t.Errorf("images[%d] = %q, want %q", i, images[i], want[i])
		}
	}
}

func TestProcess_EmptyResultHasNoCategories(t *testing.T) {
	got := Process(&extract.Result{}, "http://example.com/")

	if len(got) != 0 {
		t.Errorf("expected no categories, got %v", got)
	}
}

func TestProcess_CrossCategoryDedup(t *testing.T) {
	result := &extract.Result{
		Images: []string{"/shared.png"},
		Videos: []string{"/shared.png", "/only-video.mp4"},
	}

	got := Process(result, "http://example.com/")

	if len(got[model.CategoryImages]) != 1 {
		t.Errorf("images = %v", got[model.CategoryImages])
	}
	if len(got[model.CategoryVideos]) != 1 || got[model.CategoryVideos][0] != "http://example.com/only-video.mp4" {
		t.Errorf("videos = %v", got[model.CategoryVideos])
	}
}
