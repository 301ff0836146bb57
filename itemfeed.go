// Package itemfeed turns listing pages and JSON APIs from shopping and
// event sites into normalized feeds. Repeating blocks are located with
// ordered selector fallback, fields are pulled out with declarative rules,
// links are canonicalized and each block is projected into a Book,
// ApparelItem or Show before being rendered as a feed item.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, sqlite/).
package itemfeed
