package types

// ------------------------------
// Statistics rows
// ------------------------------
//
// Timestamps are kept as the strings the service sends: most of them carry no
// zone offset, so parsing is left to the caller. Only commonly used columns are
// mapped; Result.Decode into a map keeps everything.

// Income is one row of the incomes (supplies) report.
type Income struct {
	IncomeID        int64   `json:"incomeId"`
	Number          string  `json:"number"`
	Date            string  `json:"date"`
	LastChangeDate  string  `json:"lastChangeDate"`
	SupplierArticle string  `json:"supplierArticle"`
	TechSize        string  `json:"techSize"`
	Barcode         string  `json:"barcode"`
	Quantity        int     `json:"quantity"`
	TotalPrice      float64 `json:"totalPrice"`
	DateClose       string  `json:"dateClose"`
	WarehouseName   string  `json:"warehouseName"`
	NmID            int64   `json:"nmId"`
	Status          string  `json:"status"`
}

// Stock is one row of the warehouse stocks report.
type Stock struct {
	LastChangeDate      string  `json:"lastChangeDate"`
	SupplierArticle     string  `json:"supplierArticle"`
	TechSize            string  `json:"techSize"`
	Barcode             string  `json:"barcode"`
	Quantity            int     `json:"quantity"`
	IsSupply            bool    `json:"isSupply"`
	IsRealization       bool    `json:"isRealization"`
	QuantityFull        int     `json:"quantityFull"`
	QuantityNotInOrders int     `json:"quantityNotInOrders"`
	WarehouseName       string  `json:"warehouseName"`
	InWayToClient       int     `json:"inWayToClient"`
	InWayFromClient     int     `json:"inWayFromClient"`
	NmID                int64   `json:"nmId"`
	Subject             string  `json:"subject"`
	Category            string  `json:"category"`
	DaysOnSite          int     `json:"daysOnSite"`
	Brand               string  `json:"brand"`
	SCCode              string  `json:"SCCode"`
	Price               float64 `json:"Price"`
	Discount            float64 `json:"Discount"`
}

// Order is one row of the orders report.
type Order struct {
	Number          string  `json:"number"`
	Date            string  `json:"date"`
	LastChangeDate  string  `json:"lastChangeDate"`
	SupplierArticle string  `json:"supplierArticle"`
	TechSize        string  `json:"techSize"`
	Barcode         string  `json:"barcode"`
	TotalPrice      float64 `json:"totalPrice"`
	DiscountPercent float64 `json:"discountPercent"`
	WarehouseName   string  `json:"warehouseName"`
	Oblast          string  `json:"oblast"`
	IncomeID        int64   `json:"incomeID"`
	Odid            int64   `json:"odid"`
	NmID            int64   `json:"nmId"`
	Subject         string  `json:"subject"`
	Category        string  `json:"category"`
	Brand           string  `json:"brand"`
	IsCancel        bool    `json:"isCancel"`
	CancelDate      string  `json:"cancel_dt"`
	GNumber         string  `json:"gNumber"`
	Sticker         string  `json:"sticker"`
	Srid            string  `json:"srid"`
}

// Sale is one row of the sales report.
type Sale struct {
	Number          string  `json:"number"`
	Date            string  `json:"date"`
	LastChangeDate  string  `json:"lastChangeDate"`
	SupplierArticle string  `json:"supplierArticle"`
	TechSize        string  `json:"techSize"`
	Barcode         string  `json:"barcode"`
	TotalPrice      float64 `json:"totalPrice"`
	DiscountPercent float64 `json:"discountPercent"`
	IsSupply        bool    `json:"isSupply"`
	IsRealization   bool    `json:"isRealization"`
	PromoCodeDisc   float64 `json:"promoCodeDiscount"`
	WarehouseName   string  `json:"warehouseName"`
	CountryName     string  `json:"countryName"`
	OblastOkrugName string  `json:"oblastOkrugName"`
	RegionName      string  `json:"regionName"`
	IncomeID        int64   `json:"incomeID"`
	SaleID          string  `json:"saleID"`
	Odid            int64   `json:"odid"`
	SPP             float64 `json:"spp"`
	ForPay          float64 `json:"forPay"`
	FinishedPrice   float64 `json:"finishedPrice"`
	PriceWithDisc   float64 `json:"priceWithDisc"`
	NmID            int64   `json:"nmId"`
	Subject         string  `json:"subject"`
	Category        string  `json:"category"`
	Brand           string  `json:"brand"`
	GNumber         string  `json:"gNumber"`
	Sticker         string  `json:"sticker"`
	Srid            string  `json:"srid"`
}

// ReportDetail is one row of the sales-detail (realization) report. RrdID is
// the paging cursor: pass the last row's value to fetch the next page.
type ReportDetail struct {
	RealizationReportID int64   `json:"realizationreport_id"`
	DateFrom            string  `json:"date_from"`
	DateTo              string  `json:"date_to"`
	RrdID               int64   `json:"rrd_id"`
	GiID                int64   `json:"gi_id"`
	SubjectName         string  `json:"subject_name"`
	NmID                int64   `json:"nm_id"`
	BrandName           string  `json:"brand_name"`
	SaName              string  `json:"sa_name"`
	TsName              string  `json:"ts_name"`
	Barcode             string  `json:"barcode"`
	DocTypeName         string  `json:"doc_type_name"`
	Quantity            int     `json:"quantity"`
	RetailPrice         float64 `json:"retail_price"`
	RetailAmount        float64 `json:"retail_amount"`
	SalePercent         float64 `json:"sale_percent"`
	CommissionPercent   float64 `json:"commission_percent"`
	OfficeName          string  `json:"office_name"`
	SupplierOperName    string  `json:"supplier_oper_name"`
	OrderDate           string  `json:"order_dt"`
	SaleDate            string  `json:"sale_dt"`
	RrDate              string  `json:"rr_dt"`
	ShkID               int64   `json:"shk_id"`
	DeliveryAmount      int     `json:"delivery_amount"`
	ReturnAmount        int     `json:"return_amount"`
	DeliveryRub         float64 `json:"delivery_rub"`
	PpvzForPay          float64 `json:"ppvz_for_pay"`
	Srid                string  `json:"srid"`
}

// ExciseGood is one row of the excise goods (marking codes) report.
type ExciseGood struct {
	ID              int64   `json:"id"`
	FinishedPrice   float64 `json:"finishedPrice"`
	OperationTypeID int     `json:"operationTypeId"`
	FiscalDate      string  `json:"fiscalDt"`
	DocNumber       int64   `json:"docNumber"`
	FnNumber        string  `json:"fnNumber"`
	RegNumber       string  `json:"regNumber"`
	Excise          string  `json:"excise"`
	Date            string  `json:"date"`
}
