// Package cache provides a generic LRU cache used for rasterized glyphs.
//
//	c := cache.New[glyphKey, *Glyph](512)
//	g := c.GetOrCreate(key, func() *Glyph { return rasterize(key) })
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
