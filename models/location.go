package models

// 標準貨架的固定尺寸（公分），系統內所有貨架皆相同
const (
	ShelfLength = 50
	ShelfWidth  = 46
	ShelfHeight = 42
)

// LocationDef 定義地區代碼、全名與每日基本費率
type LocationDef struct {
	Area        string
	Name        string
	PricePerDay float64
}

// LocationDefs 系統支援的所有地區（代碼、全名、每日費率）
var LocationDefs = []LocationDef{
	{"AMK", "Ang Mo Kio", 6.99},
	{"BDK", "Bedok", 6.99},
	{"BSH", "Bishan", 6.99},
	{"BLY", "Boon Lay", 6.99},
	{"BBK", "Bukit Batok", 6.99},
	{"BMR", "Bukit Merah", 6.99},
	{"BPN", "Bukit Panjang", 6.99},
	{"BTM", "Bukit Timah", 6.99},
	{"CWC", "Central Water Catchment", 6.99},
	{"CGI", "Changi", 6.99},
	{"CGB", "Changi Bay", 6.99},
	{"CLE", "Clementi", 6.99},
	{"DTC", "Downtown Core", 6.99},
	{"GEY", "Geylang", 6.99},
	{"HOU", "Hougang", 6.99},
	{"JES", "Jurong East", 6.99},
	{"JWS", "Jurong West", 6.99},
	{"KLL", "Kallang", 6.99},
	{"LCK", "Lim Chu Kang", 6.99},
	{"MAN", "Mandai", 6.99},
	{"MAE", "Marina East", 6.99},
	{"MAS", "Marina South", 6.99},
	{"MPA", "Marine Parade", 6.99},
	{"MUS", "Museum", 6.99},
	{"NEW", "Newton", 6.99},
	{"NEI", "North-Eastern Islands", 6.99},
	{"NOV", "Novena", 6.99},
	{"ORC", "Orchard", 6.99},
	{"OUT", "Outram", 6.99},
	{"PBL", "Paya Lebar", 6.99},
	{"PIO", "Pioneer", 6.99},
	{"PGL", "Punggol", 6.99},
	{"PRS", "Pasir Ris", 6.99},
	{"QTN", "Queenstown", 6.99},
	{"RVL", "River Valley", 6.99},
	{"RCH", "Rochor", 6.99},
	{"SEL", "Seletar", 6.99},
	{"SBW", "Sembawang", 6.99},
	{"SKG", "Sengkang", 6.99},
	{"SRG", "Serangoon", 6.99},
	{"SMP", "Simpang", 6.99},
	{"SGR", "Singapore River", 6.99},
	{"SIS", "Southern Islands", 6.99},
	{"SKT", "Sungei Kadut", 6.99},
	{"STV", "Straits View", 6.99},
	{"TMP", "Tampines", 6.99},
	{"TGL", "Tanglin", 6.99},
	{"TGH", "Tengah", 6.99},
	{"TPY", "Toa Payoh", 6.99},
	{"TUA", "Tuas", 6.99},
	{"WIS", "Western Islands", 6.99},
	{"WWC", "Western Water Catchment", 6.99},
	{"WDL", "Woodlands", 6.99},
	{"YSH", "Yishun", 6.99},
}

// Location 地區與其每日費率
type Location struct {
	LocationID  int     `json:"location_id" gorm:"primaryKey;autoIncrement"`
	Area        string  `json:"area" gorm:"type:varchar(3);not null" binding:"required,len=3"`            // 地區代碼
	Address     string  `json:"address" gorm:"type:varchar(200)" binding:"omitempty,max=200"`             // 地址
	PricePerDay float64 `json:"price_per_day" gorm:"type:decimal(4,2);default:1.00" binding:"omitempty,gte=0"` // 該地區單一貨架每日價格
}

func (Location) TableName() string {
	return "location"
}

// LoadPrice 依地區代碼從費率表載入每日價格，查無代碼時設為 0
// 價格只在建立時載入一次，之後費率表變動不會回寫
func (l *Location) LoadPrice() {
	for _, def := range LocationDefs {
		if def.Area == l.Area {
			l.PricePerDay = def.PricePerDay
			return
		}
	}
	l.PricePerDay = 0
}

// AreaName 取得地區代碼對應的全名，查無代碼時回傳空字串
func AreaName(area string) string {
	for _, def := range LocationDefs {
		if def.Area == area {
			return def.Name
		}
	}
	return ""
}

type LocationResponse struct {
	LocationID  int     `json:"location_id"`
	Area        string  `json:"area"`
	AreaName    string  `json:"area_name"`
	Address     string  `json:"address"`
	PricePerDay float64 `json:"price_per_day"`
}

func (l *Location) ToResponse() LocationResponse {
	return LocationResponse{
		LocationID:  l.LocationID,
		Area:        l.Area,
		AreaName:    AreaName(l.Area),
		Address:     l.Address,
		PricePerDay: l.PricePerDay,
	}
}
