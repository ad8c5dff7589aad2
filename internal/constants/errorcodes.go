// Package constants provides shared constant values used throughout the application.
//
// The errorcodes.go file defines user-facing error messages. Messages related to
// credential verification are deliberately generic so that callers cannot tell an
// unknown identity apart from a wrong password or a spent temporary credential.
package constants

// User-Facing Error Messages that can be safely presented to clients.
const (
	// MsgAuthRequired indicates that the user must authenticate to access the resource.
	MsgAuthRequired = "Authentication required"

	// MsgInvalidCredentials is the single generic message for every credential
	// failure: unknown identifier, wrong permanent password, or a wrong, expired
	// or already-used temporary password.
	MsgInvalidCredentials = "Invalid login or password"

	// MsgAccountNotActive is surfaced only after the permanent password has been
	// verified, so it does not leak identity information.
	MsgAccountNotActive = "This account is not active. Contact an administrator."

	// MsgUseTemporaryPassword directs a user who supplied their old permanent
	// password while an approved reset is outstanding.
	MsgUseTemporaryPassword = "A temporary password has been issued for this account. Sign in with the temporary password."

	// MsgCurrentPasswordIncorrect indicates the supplied current password matched
	// neither the permanent password nor a valid temporary one.
	MsgCurrentPasswordIncorrect = "Current password is incorrect"

	// MsgPasswordsDoNotMatch indicates that the new password and its confirmation differ.
	MsgPasswordsDoNotMatch = "Passwords do not match"

	// MsgPasswordTooShort indicates the new password is below the minimum length.
	MsgPasswordTooShort = "Password must be at least 8 characters"

	// MsgResetRequestPending indicates a reset request already exists for the user.
	MsgResetRequestPending = "A password reset request is already pending for this account"

	// MsgResetAlreadyApproved indicates an approval was attempted twice.
	MsgResetAlreadyApproved = "This reset request has already been approved"

	// MsgResetRequestAccepted is the generic acknowledgement for a reset request,
	// returned whether or not the supplied identity matched a real account.
	MsgResetRequestAccepted = "If the details match an account, the request has been registered"

	// MsgTokenExpired indicates an authentication token has expired.
	MsgTokenExpired = "Token has expired"

	// MsgAccessDenied indicates the user lacks permission for the requested action.
	MsgAccessDenied = "You don't have permission to access this resource"

	// MsgInternalServerError provides a generic server error message.
	MsgInternalServerError = "An internal server error occurred"

	// MsgRequestBodyTooLarge indicates the request body exceeded the size limit.
	MsgRequestBodyTooLarge = "Request body exceeds the maximum allowed size"

	// MsgEmptyRequestBody indicates the request body was empty.
	MsgEmptyRequestBody = "Request body must not be empty"

	// MsgMalformedJSON indicates the request body was not valid JSON.
	MsgMalformedJSON = "Request body contains malformed JSON"
)
