package errortypes

// BadInput should be used when returning errors which are caused by bad input, such as a
// request body that is not the expected JSON shape.
//
// BadInputs are not written to the app log, since they are not actionable for the host.
type BadInput struct {
	Message string
}

func (err *BadInput) Error() string {
	return err.Message
}

func (err *BadInput) Code() int {
	return BadInputErrorCode
}

func (err *BadInput) Severity() Severity {
	return SeverityFatal
}

// FailedToUnmarshal should be used when a payload could not be decoded at all.
type FailedToUnmarshal struct {
	Message string
}

func (err *FailedToUnmarshal) Error() string {
	return err.Message
}

func (err *FailedToUnmarshal) Code() int {
	return FailedToUnmarshalErrorCode
}

func (err *FailedToUnmarshal) Severity() Severity {
	return SeverityFatal
}

// FailedToMarshal should be used when a result could not be encoded for the response.
type FailedToMarshal struct {
	Message string
}

func (err *FailedToMarshal) Error() string {
	return err.Message
}

func (err *FailedToMarshal) Code() int {
	return FailedToMarshalErrorCode
}

func (err *FailedToMarshal) Severity() Severity {
	return SeverityFatal
}

// RequestTooLarge should be used when a request body exceeds the configured maximum size.
type RequestTooLarge struct {
	Message string
}

func (err *RequestTooLarge) Error() string {
	return err.Message
}

func (err *RequestTooLarge) Code() int {
	return RequestTooLargeErrorCode
}

func (err *RequestTooLarge) Severity() Severity {
	return SeverityFatal
}

// NotFound should be used when a stored report is unknown or has expired.
type NotFound struct {
	Message string
}

func (err *NotFound) Error() string {
	return err.Message
}

func (err *NotFound) Code() int {
	return NotFoundErrorCode
}

func (err *NotFound) Severity() Severity {
	return SeverityFatal
}

// InvalidConfig flags a host configuration value that failed validation.
type InvalidConfig struct {
	Message string
}

func (err *InvalidConfig) Error() string {
	return err.Message
}

func (err *InvalidConfig) Code() int {
	return InvalidConfigErrorCode
}

func (err *InvalidConfig) Severity() Severity {
	return SeverityFatal
}

// Warning is a generic non-fatal error.
type Warning struct {
	Message     string
	WarningCode int
}

func (err *Warning) Error() string {
	return err.Message
}

func (err *Warning) Code() int {
	return err.WarningCode
}

func (err *Warning) Severity() Severity {
	return SeverityWarning
}
