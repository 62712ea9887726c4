package validation

const (
	// PINLength is the number of digits in an M-Pesa PIN.
	PINLength = 4
	// CodeLength is the number of digits in a verification code.
	CodeLength = 6
	// MinPasswordLength is the shortest accepted account password.
	MinPasswordLength = 8
)

const (
	MsgPINLength     = "PIN must be 4 digits."
	MsgPINDigits     = "PIN must contain only digits."
	MsgPINWeak       = "PIN is too weak. Avoid sequential or repeating digits."
	MsgCodeLength    = "Ensure this value has exactly 6 characters."
	MsgCodeDigits    = "Verification code must contain only digits."
	MsgPasswordShort = "This password is too short. It must contain at least 8 characters."
)

// weakPINs are rejected for new PINs: the two straight sequences and every repeated digit.
var weakPINs = map[string]struct{}{
	"1234": {}, "4321": {},
	"0000": {}, "1111": {}, "2222": {}, "3333": {}, "4444": {},
	"5555": {}, "6666": {}, "7777": {}, "8888": {}, "9999": {},
}

// PIN checks that value is exactly PINLength digits.
func PIN(value string) error {
	if len(value) != PINLength {
		return Errorf(KindFormat, MsgPINLength)
	}
	if !isDigits(value) {
		return Errorf(KindFormat, MsgPINDigits)
	}
	return nil
}

// IsWeakPIN reports whether pin is on the weak-pattern blacklist.
func IsWeakPIN(pin string) bool {
	_, ok := weakPINs[pin]
	return ok
}

// StrongPIN rejects blacklisted PINs.
func StrongPIN(pin string) error {
	if IsWeakPIN(pin) {
		return Errorf(KindWeakness, MsgPINWeak)
	}
	return nil
}

// VerificationCode checks that value is exactly CodeLength digits.
func VerificationCode(value string) error {
	if len(value) != CodeLength {
		return Errorf(KindFormat, MsgCodeLength)
	}
	if !isDigits(value) {
		return Errorf(KindFormat, MsgCodeDigits)
	}
	return nil
}

// StrongPassword checks length and that the password mixes upper case, lower case, digits and symbols.
func StrongPassword(password string) error {
	if len(password) < MinPasswordLength {
		return Errorf(KindWeakness, MsgPasswordShort)
	}
	var hasUpper, hasLower, hasNumber, hasSymbol bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasNumber = true
		default:
			hasSymbol = true
		}
	}
	if !hasUpper {
		return Errorf(KindWeakness, "Password must contain at least one uppercase letter.")
	}
	if !hasLower {
		return Errorf(KindWeakness, "Password must contain at least one lowercase letter.")
	}
	if !hasNumber {
		return Errorf(KindWeakness, "Password must contain at least one number.")
	}
	if !hasSymbol {
		return Errorf(KindWeakness, "Password must contain at least one symbol.")
	}
	return nil
}
