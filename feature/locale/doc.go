// Package locale parses the localization sheet that maps unit ids to
// display names.
//
// The sheet is a semicolon separated CSV exported from the game's
// translation system. Keys come in several shapes for the same unit:
// plain ids, ids with a _shop suffix, shop/group/ prefixed group entries,
// and numbered duplicates (id_0, id_1, ...). Parsing folds the decorated
// shapes onto the bare id; Lookup falls back through the numbered variants.
//
// A missing translation is reported as an empty string so the merge stage
// can surface it as a diagnostic instead of silently writing the raw id.
package locale
