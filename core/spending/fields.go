package spending

// Resource identifies which search endpoint a query targets.
type Resource string

const (
	// ResourceAwards targets the award-search endpoint.
	ResourceAwards Resource = "awards"
	// ResourceTransactions targets the transaction-search endpoint.
	ResourceTransactions Resource = "transactions"
)

// ExternalRecordLimit is the hard cap the API applies to any sorted search.
// Results beyond it are silently dropped while the final page still reports
// hasNext=false.
const ExternalRecordLimit = 10000

// ContractTypeCodes are the award type codes for contracts.
var ContractTypeCodes = []string{"A", "B", "C", "D"}

// AssistanceTypeCodes are the award type codes for grants, loans, and other
// assistance instruments.
var AssistanceTypeCodes = []string{"02", "03", "04", "05", "06", "07", "08", "09", "10", "11"}

// AllTypeCodes returns every known contract and assistance type code.
func AllTypeCodes() []string {
	codes := make([]string, 0, len(ContractTypeCodes)+len(AssistanceTypeCodes))
	codes = append(codes, ContractTypeCodes...)
	codes = append(codes, AssistanceTypeCodes...)
	return codes
}

// awardFields is the field allow-list for award searches.
// "COVID-19 Obligations" and "Infrastructure Obligations" are documented but
// make the endpoint return HTTP 500, so they stay out.
var awardFields = []string{
	"Award ID",
	"generated_internal_id",
	"Recipient Name",
	"Recipient UEI",
	"Recipient Business Categories",
	"Award Amount",
	"Award Type",
	"Description",
	"Award Date",
	"Start Date",
	"End Date",
	"Last Modified Date",
	"Base Obligation Date",
	"Awarding Agency",
	"Awarding Sub Agency",
	"Funding Agency",
	"NAICS",
	"PSC",
	"Place of Performance State Code",
}

// transactionFields is the field allow-list for transaction searches.
var transactionFields = []string{
	"Award ID",
	"generated_internal_id",
	"internal_id",
	"Mod",
	"Action Date",
	"Action Type",
	"Transaction Amount",
	"Transaction Description",
	"Award Type",
	"Awarding Agency",
	"Awarding Sub Agency",
	"Recipient Name",
	"Recipient UEI",
	"NAICS",
	"PSC",
	"Place of Performance State Code",
	"Start Date",
	"End Date",
}

// AwardLink builds the canonical USAspending page link for a record,
// preferring the internal generated identifier over the raw award id.
func AwardLink(generatedID, awardID string) string {
	if generatedID != "" {
		return "https://www.usaspending.gov/award/" + generatedID + "/"
	}
	if awardID != "" {
		return "https://www.usaspending.gov/award/" + awardID + "/"
	}
	return ""
}

// FieldsFor returns the request field list for a resource kind.
func FieldsFor(res Resource) []string {
	if res == ResourceTransactions {
		return transactionFields
	}
	return awardFields
}

// SortKeyFor returns the fixed sort key and order the API requires for a
// resource kind: amount-descending for awards, action-date-descending for
// transactions.
func SortKeyFor(res Resource) (string, string) {
	if res == ResourceTransactions {
		return "Action Date", "desc"
	}
	return "Award Amount", "desc"
}
