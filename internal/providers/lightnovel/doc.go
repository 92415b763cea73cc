// Package lightnovel implements providers.Source for the novel reading site
// that serves chapters at /novel/{slug}/chapter-{n}. The chapter heading is
// read from "h1 .chapter-title" and the body from "#chapter-container".
package lightnovel
