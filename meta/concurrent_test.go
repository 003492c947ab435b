package meta

import (
	"sync"
	"testing"
)

// TestCloneConcurrent runs one clone per goroutine against a shared NFA and
// prefilter.
func TestCloneConcurrent(t *testing.T) {
	base, err := Compile("x*(foo|bar)+y*")
	if err != nil {
		t.Fatal(err)
	}

	inputs := []struct {
		text string
		want bool
	}{
		{"foo", true},
		{"xxfoobarfooyy", true},
		{"xxbaryy", true},
		{"xxbazyy", false},
		{"", false},
		{"foobarx", false},
	}

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan string, workers*len(inputs))
	for w := 0; w < workers; w++ {
		e := base.Clone()
		wg.Add(1)
		go func() {
			defer wg.Done()
			for round := 0; round < 50; round++ {
				for _, in := range inputs {
					if got := e.IsMatchString(in.text); got != in.want {
						errs <- in.text
						return
					}
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for text := range errs {
		t.Errorf("wrong result for %q", text)
	}
}
