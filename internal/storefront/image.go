package storefront

import "github.com/ggorockee/storefront/pkg/imageurl"

// Image tracks which source an image slot displays. A load failure moves it
// to the fallback once per requested source; a new source resets it.
type Image struct {
	requested string
	current   string
	fallback  string
	failed    bool
}

func NewImage(src, fallback string) *Image {
	return &Image{
		requested: src,
		current:   src,
		fallback:  fallback,
	}
}

// Src is the source that should be displayed now
func (i *Image) Src() string {
	return i.current
}

// Failed reports whether the requested source failed and the fallback is shown
func (i *Image) Failed() bool {
	return i.failed
}

// OnError records a load failure of the current source. It returns true when
// the image switched to the fallback. A failing fallback never switches again.
func (i *Image) OnError() bool {
	if i.failed || i.current == i.fallback {
		return false
	}
	i.failed = true
	i.current = i.fallback
	return true
}

// SetSource changes the requested source. A different value clears the error
// state so the new source is attempted; the same value is a no-op.
func (i *Image) SetSource(src string) {
	if src == i.requested {
		return
	}
	i.requested = src
	i.current = src
	i.failed = false
}

// ResolveImage picks the URL a product image should be served with. A blank
// source becomes fallback; a source that is not a usable URL counts as a load
// failure and also resolves to fallback.
func ResolveImage(src *string, fallback string) string {
	img := NewImage(imageurl.GetImageURL(src, fallback), fallback)
	if !imageurl.IsValidImageURL(img.Src()) {
		img.OnError()
	}
	return img.Src()
}
