// Package locations — справочник адміністративного поділу України
// (КАТОТТГ). Таблица ua_locations заливается отдельным скриптом
// и читается ботом только на чтение.
package locations

// Категории записей справочника.
const (
	CategoryRegion   = "O" // область
	CategoryDistrict = "P" // район
	CategoryHromada  = "H" // територіальна громада
)

// Категории населённых пунктов: город, город обл. значения, пгт,
// село, селище, район города и кириллическая "С" из исходных данных.
var SettlementCategories = []string{"C", "M", "T", "X", "B", "K", "С"}

// Item — элемент справочника для клавиатуры выбора.
type Item struct {
	Code     string
	Name     string
	Category string
}
