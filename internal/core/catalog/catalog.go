// Package catalog 提供食材主檔快照與替代食材展開。
// 替代食材的比對屬於主檔層的責任：引擎只做名稱完全相等的比對，
// 此處先把持有食材展開成等價名稱再交給引擎。
package catalog

import (
	"fridge-recommender/internal/pkg/common"
)

// Catalog 食材主檔的唯讀快照
type Catalog struct {
	entries map[string]common.IngredientCatalogEntry
	// aliasToCanonical 替代名稱 → 標準名稱（正規化後）
	aliasToCanonical map[string][]string
}

// New 以主檔記錄建立快照；名稱以不分大小寫的鍵索引
func New(entries []common.IngredientCatalogEntry) *Catalog {
	c := &Catalog{
		entries:          make(map[string]common.IngredientCatalogEntry, len(entries)),
		aliasToCanonical: make(map[string][]string),
	}
	for _, entry := range entries {
		key := common.NormalizeName(entry.Name)
		if key == "" {
			continue
		}
		c.entries[key] = entry
		for _, alt := range entry.Alternatives {
			altKey := common.NormalizeName(alt)
			if altKey == "" || altKey == key {
				continue
			}
			c.aliasToCanonical[altKey] = append(c.aliasToCanonical[altKey], key)
		}
	}
	return c
}

// Lookup 查詢主檔記錄
func (c *Catalog) Lookup(name string) (common.IngredientCatalogEntry, bool) {
	entry, ok := c.entries[common.NormalizeName(name)]
	return entry, ok
}

// Size 主檔記錄數
func (c *Catalog) Size() int {
	return len(c.entries)
}

// ExpandInventory 把持有食材展開成含等價名稱的清單：
//   - 持有替代食材時補上標準名稱（持 적양파 可滿足 양파 的需求）
//   - 持有標準食材時補上其替代名稱（持 양파 可滿足寫作 적양파 的需求）
//
// 補上的別名項目沿用原項目的數量與效期，數量判定不受影響。
func (c *Catalog) ExpandInventory(items []common.InventoryItem) []common.InventoryItem {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		seen[common.NormalizeName(item.IngredientName)] = struct{}{}
	}

	expanded := append([]common.InventoryItem(nil), items...)
	addAlias := func(base common.InventoryItem, name string) {
		key := common.NormalizeName(name)
		if key == "" {
			return
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		alias := base
		alias.IngredientName = name
		expanded = append(expanded, alias)
	}

	for _, item := range items {
		key := common.NormalizeName(item.IngredientName)

		if canonicals, ok := c.aliasToCanonical[key]; ok {
			for _, canonical := range canonicals {
				addAlias(item, canonical)
			}
		}

		if entry, ok := c.entries[key]; ok {
			for _, alt := range entry.Alternatives {
				addAlias(item, alt)
			}
		}
	}

	return expanded
}
