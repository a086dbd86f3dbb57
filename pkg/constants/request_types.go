package constants

// RequestType - категория административной заявки.
type RequestType string

const (
	RequestTypeLeave       RequestType = "LEAVE"
	RequestTypeAbsence     RequestType = "ABSENCE"
	RequestTypeEquipment   RequestType = "EQUIPMENT"
	RequestTypeTransport   RequestType = "TRANSPORT"
	RequestTypeLodging     RequestType = "LODGING"
	RequestTypeBudget      RequestType = "BUDGET"
	RequestTypeTraining    RequestType = "TRAINING"
	RequestTypeEvent       RequestType = "EVENT"
	RequestTypePartnership RequestType = "PARTNERSHIP"
	RequestTypeOther       RequestType = "OTHER"
)

var AllRequestTypes = []RequestType{
	RequestTypeLeave,
	RequestTypeAbsence,
	RequestTypeEquipment,
	RequestTypeTransport,
	RequestTypeLodging,
	RequestTypeBudget,
	RequestTypeTraining,
	RequestTypeEvent,
	RequestTypePartnership,
	RequestTypeOther,
}

func (t RequestType) String() string {
	return string(t)
}

func IsValidRequestType(t RequestType) bool {
	for _, item := range AllRequestTypes {
		if item == t {
			return true
		}
	}
	return false
}
