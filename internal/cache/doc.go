// Package cache provides a generic thread-safe LRU cache.
//
//	c := cache.New[uint64, *font.Font](16)
//	ft, err := c.GetOrCreate(hash, parse)
//
// The sfnt native instancer uses it to parse a variable font once when many
// instances of it are pinned in a row.
package cache
