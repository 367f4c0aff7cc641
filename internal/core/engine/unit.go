package engine

import "strings"

// 標準單位
const (
	UnitCount = "count"
	UnitGram  = "g"
	UnitKilo  = "kg"
	UnitMilli = "ml"
	UnitLiter = "l"
	UnitCup   = "cup"
	UnitTbsp  = "tbsp"
	UnitTsp   = "tsp"
)

// unitSynonyms 單位同義詞對照表（韓文、英文混用是原始資料的常態）
var unitSynonyms = map[string]string{
	// 數量類
	"개":      UnitCount,
	"조각":     UnitCount,
	"장":      UnitCount,
	"알":      UnitCount,
	"쪽":      UnitCount,
	"마리":     UnitCount,
	"모":      UnitCount,
	"대":      UnitCount,
	"통":      UnitCount,
	"포기":     UnitCount,
	"단":      UnitCount,
	"봉지":     UnitCount,
	"ea":     UnitCount,
	"pc":     UnitCount,
	"pcs":    UnitCount,
	"piece":  UnitCount,
	"pieces": UnitCount,
	"count":  UnitCount,

	// 質量類
	"g":    UnitGram,
	"그램":   UnitGram,
	"그람":   UnitGram,
	"gram": UnitGram,
	"kg":   UnitKilo,
	"킬로":   UnitKilo,
	"킬로그램": UnitKilo,

	// 容量類
	"ml":         UnitMilli,
	"밀리리터":       UnitMilli,
	"cc":         UnitMilli,
	"l":          UnitLiter,
	"리터":         UnitLiter,
	"liter":      UnitLiter,
	"cup":        UnitCup,
	"cups":       UnitCup,
	"컵":          UnitCup,
	"tbsp":       UnitTbsp,
	"큰술":         UnitTbsp,
	"tablespoon": UnitTbsp,
	"tsp":        UnitTsp,
	"작은술":        UnitTsp,
	"teaspoon":   UnitTsp,
}

// conversionRatios 同維度固定比例換算表。
// 僅支援 kg↔g 與 l↔ml；數量類單位（개/조각/장）之間刻意不換算，
// 寧可不換算也不做錯誤的隱含假設。
var conversionRatios = map[[2]string]float64{
	{UnitKilo, UnitGram}:   1000,
	{UnitGram, UnitKilo}:   0.001,
	{UnitLiter, UnitMilli}: 1000,
	{UnitMilli, UnitLiter}: 0.001,
}

// NormalizeUnit 將單位字串正規化為標準單位；查無同義詞時原樣回傳（小寫去空白）
func NormalizeUnit(unit string) string {
	key := strings.ToLower(strings.TrimSpace(unit))
	if canonical, ok := unitSynonyms[key]; ok {
		return canonical
	}
	return key
}

// ConvertQuantity 同維度單位換算。
// 不在換算表內的組合（跨維度、未知單位）原值回傳，明確的 no-op 後備。
func ConvertQuantity(quantity float64, fromUnit, toUnit string) float64 {
	from := NormalizeUnit(fromUnit)
	to := NormalizeUnit(toUnit)
	if from == to {
		return quantity
	}
	if ratio, ok := conversionRatios[[2]string{from, to}]; ok {
		return quantity * ratio
	}
	return quantity
}
