package entity

// CompanyClassification es la proyección de lectura de la tabla externa company_classification.
// Este servicio no crea ni modifica esa tabla; sus columnas son un contrato con el dueño del dato.
type CompanyClassification struct {
	CompanyID         *int64
	CompanyName       string
	Comments          *string
	MarketCapCategory *string
	BasicIndCode      string
}
