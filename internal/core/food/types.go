package food

// QuantityKind 數量的種類
type QuantityKind int

const (
	QuantityGrams  QuantityKind = iota // 指定克數，例如 "100g chicken breast"
	QuantityCount                      // 純數量，例如 "2 bananas"
	QuantityVolume                     // 容量單位，例如 "2 tbsp olive oil"
)

// VolumeUnit 容量單位（統一使用縮寫，長寫在擷取時即轉換）
type VolumeUnit string

const (
	UnitTbsp VolumeUnit = "tbsp"
	UnitTsp  VolumeUnit = "tsp"
)

// RawMention 文法擷取出的候選食物，僅在管線內部流轉，不做持久化
// Phrase 已經過 CleanFoodName 正規化
type RawMention struct {
	Phrase   string
	Quantity float64
	Kind     QuantityKind
	Unit     VolumeUnit // 僅 QuantityVolume 有值
}

// Mention 換算份量後的食物提及
// Name 是去重與比對用的鍵；DisplayName 在容量單位時會帶上單位註記
type Mention struct {
	Name         string
	ServingGrams float64
	DisplayName  string
}
