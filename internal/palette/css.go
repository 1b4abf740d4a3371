package palette

import (
	"fmt"
	"io"
)

// WriteCSS writes a stylesheet applying t to the page elements that sit
// over the backdrop: the name highlight takes the primary color, while
// highlights and social icons alternate primary and secondary.
//
// The rules alternate with :nth-of-type, which counts an element among its
// siblings of the same tag, not among all elements with the class. The
// result matches a document-order alternation only when each class's
// elements are same-tag siblings under one parent with nothing else of
// that tag between them; elsewhere two consecutive highlights can end up
// the same color.
func WriteCSS(w io.Writer, t Theme) error {
	_, err := fmt.Fprintf(w, `/* %s */
:root {
  --theme-primary: %s;
  --theme-secondary: %s;
}

.name-highlight {
  color: var(--theme-primary);
}

.highlight:nth-of-type(odd) {
  color: var(--theme-primary);
}

.highlight:nth-of-type(even) {
  color: var(--theme-secondary);
}

.social-icon:nth-of-type(odd) i {
  background-color: var(--theme-primary);
}

.social-icon:nth-of-type(even) i {
  background-color: var(--theme-secondary);
}
`, t.Name, t.Primary, t.Secondary)
	if err != nil {
		return fmt.Errorf("writing css: %w", err)
	}
	return nil
}
