// Package domain holds the value types shared across the console: form drafts,
// generation results, directory entries and trends.
//
// The package has no dependency on the UI, the store or any generator. Values are
// immutable: updates return a modified copy.
package domain
