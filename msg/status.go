/*
 * Copyright 2021 Dogtag PKI Project contributors.
 *
 * This file is part of the Dogtag TPS client SDK.
 *
 * Licensed under the Apache License, Version 2.0 (the "License").
 * You may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *     http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES, CONDITIONS, OR OTHER LICENSES OF ANY KIND, either
 * express or implied. See the License for the specific language governing
 * permissions and limitations under the License.
 */

package msg

// Status is the operation result status reported inside an end-op message. The ordinal values
// are wire format constants shared with deployed clients and must not be reordered or
// renumbered. Note that there is no dedicated unknown-status sentinel, decoding an
// out-of-table value falls back to StatusNoError.
type Status int

const (
	// StatusNoError reports a successfully completed operation.
	StatusNoError Status = 0
	// StatusErrorSnac reports a secure applet negotiation failure.
	StatusErrorSnac Status = 1
	// StatusErrorSecInitUpdate reports a secure channel initialize update failure.
	StatusErrorSecInitUpdate Status = 2
	// StatusErrorCreateCardMgr reports a card manager selection failure.
	StatusErrorCreateCardMgr Status = 3
	// StatusErrorMacResetPinPdu reports a MAC failure on a reset PIN PDU.
	StatusErrorMacResetPinPdu Status = 4
	// StatusErrorMacCertPdu reports a MAC failure on a certificate PDU.
	StatusErrorMacCertPdu Status = 5
	// StatusErrorMacLifestylePdu reports a MAC failure on a lifecycle PDU.
	StatusErrorMacLifestylePdu Status = 6
	// StatusErrorMacEnrollPdu reports a MAC failure on an enrollment PDU.
	StatusErrorMacEnrollPdu Status = 7
	// StatusErrorReadObjectPdu reports a read object PDU failure.
	StatusErrorReadObjectPdu Status = 8
	// StatusErrorBadStatus reports an unexpected token status word.
	StatusErrorBadStatus Status = 9
	// StatusErrorCaResponse reports an invalid certificate authority response.
	StatusErrorCaResponse Status = 10
	// StatusErrorReadBufferOverflow reports a read buffer overflow on the token.
	StatusErrorReadBufferOverflow Status = 11
	// StatusErrorTokenResetPinFailed reports a failed token PIN reset.
	StatusErrorTokenResetPinFailed Status = 12
	// StatusErrorConnection reports a connection failure towards a remote authority.
	StatusErrorConnection Status = 13
	// StatusErrorLogin reports an authentication failure.
	StatusErrorLogin Status = 14
	// StatusErrorDb reports a datastore failure.
	StatusErrorDb Status = 15
	// StatusErrorTokenDisabled reports an operation attempt on a disabled token.
	StatusErrorTokenDisabled Status = 16
	// StatusErrorSecureChannel reports a secure channel establishment failure.
	StatusErrorSecureChannel Status = 17
	// StatusErrorMisconfiguration reports an invalid server side configuration.
	StatusErrorMisconfiguration Status = 18
	// StatusErrorUpgradeApplet reports an applet upgrade failure.
	StatusErrorUpgradeApplet Status = 19
	// StatusErrorKeyChangeOver reports a key changeover failure.
	StatusErrorKeyChangeOver Status = 20
	// StatusErrorExternalAuth reports an external authentication failure.
	StatusErrorExternalAuth Status = 21
	// StatusErrorDefaultTokenTypeNotFound reports a missing default token type.
	StatusErrorDefaultTokenTypeNotFound Status = 22
	// StatusErrorDefaultTokenTypeParamsNotFound reports missing default token type parameters.
	StatusErrorDefaultTokenTypeParamsNotFound Status = 23
	// StatusErrorPublish reports a certificate publishing failure.
	StatusErrorPublish Status = 24
	// StatusErrorLdapConn reports a directory connection failure.
	StatusErrorLdapConn Status = 25
	// StatusErrorDisabledToken reports a lifecycle operation on a disabled token.
	StatusErrorDisabledToken Status = 26
	// StatusErrorNotPinResetable reports a PIN reset attempt on a token that does not allow it.
	StatusErrorNotPinResetable Status = 27
	// StatusErrorConnLost reports a connection lost mid-operation.
	StatusErrorConnLost Status = 28
	// StatusErrorCreateTusTokenEntry reports a token database entry creation failure.
	StatusErrorCreateTusTokenEntry Status = 29
	// StatusErrorNoSuchTokenState reports an unknown token state.
	StatusErrorNoSuchTokenState Status = 30
	// StatusErrorNoSuchLostReason reports an unknown lost token reason.
	StatusErrorNoSuchLostReason Status = 31
	// StatusErrorUnusableTokenKeyCompromise reports a token unusable due to key compromise.
	StatusErrorUnusableTokenKeyCompromise Status = 32
	// StatusErrorInactiveTokenNotFound reports a missing inactive token record.
	StatusErrorInactiveTokenNotFound Status = 33
	// StatusErrorHasAtLeastOneActiveToken reports a user that already holds an active token.
	StatusErrorHasAtLeastOneActiveToken Status = 34
	// StatusErrorContactAdmin reports a condition requiring administrator intervention.
	StatusErrorContactAdmin Status = 35
	// StatusErrorRecoveryIsProcessed reports a recovery already processed for the token.
	StatusErrorRecoveryIsProcessed Status = 36
	// StatusErrorRecoveryFailed reports a key recovery failure.
	StatusErrorRecoveryFailed Status = 37
	// StatusErrorNoOperationOnLostToken reports an operation attempt on a lost token.
	StatusErrorNoOperationOnLostToken Status = 38
	// StatusErrorKeyArchiveOff reports a key archival attempt while archival is disabled.
	StatusErrorKeyArchiveOff Status = 39
	// StatusErrorNoTksConnId reports a missing TKS connector configuration.
	StatusErrorNoTksConnId Status = 40
	// StatusErrorUpdateTokenDbFailed reports a token database update failure.
	StatusErrorUpdateTokenDbFailed Status = 41
	// StatusErrorRevokeCertificatesFailed reports a certificate revocation failure.
	StatusErrorRevokeCertificatesFailed Status = 42
	// StatusErrorNotTokenOwner reports an operation attempt by a non-owner of the token.
	StatusErrorNotTokenOwner Status = 43
	// StatusErrorRenewalIsProcessed reports a renewal already processed for the token.
	StatusErrorRenewalIsProcessed Status = 44
	// StatusErrorRenewalFailed reports a certificate renewal failure.
	StatusErrorRenewalFailed Status = 45
)

var statusStrings = map[Status]string{
	StatusNoError:                             "STATUS_NO_ERROR",
	StatusErrorSnac:                           "STATUS_ERROR_SNAC",
	StatusErrorSecInitUpdate:                  "STATUS_ERROR_SEC_INIT_UPDATE",
	StatusErrorCreateCardMgr:                  "STATUS_ERROR_CREATE_CARDMGR",
	StatusErrorMacResetPinPdu:                 "STATUS_ERROR_MAC_RESET_PIN_PDU",
	StatusErrorMacCertPdu:                     "STATUS_ERROR_MAC_CERT_PDU",
	StatusErrorMacLifestylePdu:                "STATUS_ERROR_MAC_LIFESTYLE_PDU",
	StatusErrorMacEnrollPdu:                   "STATUS_ERROR_MAC_ENROLL_PDU",
	StatusErrorReadObjectPdu:                  "STATUS_ERROR_READ_OBJECT_PDU",
	StatusErrorBadStatus:                      "STATUS_ERROR_BAD_STATUS",
	StatusErrorCaResponse:                     "STATUS_ERROR_CA_RESPONSE",
	StatusErrorReadBufferOverflow:             "STATUS_ERROR_READ_BUFFER_OVERFLOW",
	StatusErrorTokenResetPinFailed:            "STATUS_ERROR_TOKEN_RESET_PIN_FAILED",
	StatusErrorConnection:                     "STATUS_ERROR_CONNECTION",
	StatusErrorLogin:                          "STATUS_ERROR_LOGIN",
	StatusErrorDb:                             "STATUS_ERROR_DB",
	StatusErrorTokenDisabled:                  "STATUS_ERROR_TOKEN_DISABLED",
	StatusErrorSecureChannel:                  "STATUS_ERROR_SECURE_CHANNEL",
	StatusErrorMisconfiguration:               "STATUS_ERROR_MISCONFIGURATION",
	StatusErrorUpgradeApplet:                  "STATUS_ERROR_UPGRADE_APPLET",
	StatusErrorKeyChangeOver:                  "STATUS_ERROR_KEY_CHANGE_OVER",
	StatusErrorExternalAuth:                   "STATUS_ERROR_EXTERNAL_AUTH",
	StatusErrorDefaultTokenTypeNotFound:       "STATUS_ERROR_DEFAULT_TOKENTYPE_NOT_FOUND",
	StatusErrorDefaultTokenTypeParamsNotFound: "STATUS_ERROR_DEFAULT_TOKENTYPE_PARAMS_NOT_FOUND",
	StatusErrorPublish:                        "STATUS_ERROR_PUBLISH",
	StatusErrorLdapConn:                       "STATUS_ERROR_LDAP_CONN",
	StatusErrorDisabledToken:                  "STATUS_ERROR_DISABLED_TOKEN",
	StatusErrorNotPinResetable:                "STATUS_ERROR_NOT_PIN_RESETABLE",
	StatusErrorConnLost:                       "STATUS_ERROR_CONN_LOST",
	StatusErrorCreateTusTokenEntry:            "STATUS_ERROR_CREATE_TUS_TOKEN_ENTRY",
	StatusErrorNoSuchTokenState:               "STATUS_ERROR_NO_SUCH_TOKEN_STATE",
	StatusErrorNoSuchLostReason:               "STATUS_ERROR_NO_SUCH_LOST_REASON",
	StatusErrorUnusableTokenKeyCompromise:     "STATUS_ERROR_UNUSABLE_TOKEN_KEYCOMPROMISE",
	StatusErrorInactiveTokenNotFound:          "STATUS_ERROR_INACTIVE_TOKEN_NOT_FOUND",
	StatusErrorHasAtLeastOneActiveToken:       "STATUS_ERROR_HAS_AT_LEAST_ONE_ACTIVE_TOKEN",
	StatusErrorContactAdmin:                   "STATUS_ERROR_CONTACT_ADMIN",
	StatusErrorRecoveryIsProcessed:            "STATUS_ERROR_RECOVERY_IS_PROCESSED",
	StatusErrorRecoveryFailed:                 "STATUS_ERROR_RECOVERY_FAILED",
	StatusErrorNoOperationOnLostToken:         "STATUS_ERROR_NO_OPERATION_ON_LOST_TOKEN",
	StatusErrorKeyArchiveOff:                  "STATUS_ERROR_KEY_ARCHIVE_OFF",
	StatusErrorNoTksConnId:                    "STATUS_ERROR_NO_TKS_CONNID",
	StatusErrorUpdateTokenDbFailed:            "STATUS_ERROR_UPDATE_TOKENDB_FAILED",
	StatusErrorRevokeCertificatesFailed:       "STATUS_ERROR_REVOKE_CERTIFICATES_FAILED",
	StatusErrorNotTokenOwner:                  "STATUS_ERROR_NOT_TOKEN_OWNER",
	StatusErrorRenewalIsProcessed:             "STATUS_ERROR_RENEWAL_IS_PROCESSED",
	StatusErrorRenewalFailed:                  "STATUS_ERROR_RENEWAL_FAILED",
}

func (s Status) String() string {
	if str, ok := statusStrings[s]; ok {
		return str
	}
	return statusStrings[StatusNoError]
}

// StatusFromCode maps a decoded integer to the status enumeration. An out-of-table value
// falls back to StatusNoError, there is no dedicated unknown sentinel in the wire contract.
func StatusFromCode(c int) Status {
	if _, ok := statusStrings[Status(c)]; ok {
		return Status(c)
	}
	return StatusNoError
}
