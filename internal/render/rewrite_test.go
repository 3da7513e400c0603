package render

import (
	"testing"
)

func TestAbsolutize(t *testing.T) {
	base := "https://poems.example.org/"
	cases := []struct {
		in, want string
	}{
		{
			`<img src="images/a.jpg" alt="a">`,
			`<img src="https://poems.example.org/images/a.jpg" alt="a">`,
		},
		{
			`<a href="https://other.example/x?a=1&amp;b=2" target="_blank">x</a>`,
			`<a href="https://other.example/x?a=1&amp;b=2" target="_blank">x</a>`,
		},
		{
			`<pre>fish &amp; chips &lt;b&gt;</pre>`,
			`<pre>fish &amp; chips &lt;b&gt;</pre>`,
		},
		{
			`<video controls loop><source src="images/v.webm" type="video/webm"></video>`,
			`<video controls="" loop=""><source src="https://poems.example.org/images/v.webm" type="video/webm"></video>`,
		},
		{
			`<div class="poem-unit" id="images/not-a-url">text</div>`,
			`<div class="poem-unit" id="images/not-a-url">text</div>`,
		},
	}
	for _, c := range cases {
		got, err := Absolutize(c.in, base)
		if err != nil {
			t.Fatalf("Absolutize(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("Absolutize(%q):\n expected %q\n      got %q", c.in, c.want, got)
		}
	}
}

func TestAbsolutize_SubpathBase(t *testing.T) {
	got, err := Absolutize(`<img src="images/a.jpg">`, "https://example.org/poems/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `<img src="https://example.org/poems/images/a.jpg">` {
		t.Errorf("unexpected result %q", got)
	}
}

func TestAbsolutize_InvalidURL(t *testing.T) {
	if _, err := Absolutize(`<a href="notes%zz.html">x</a>`, "https://example.org/"); err == nil {
		t.Error("expected error for an unparseable href")
	}
}
