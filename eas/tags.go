package eas

import "github.com/alexjbarnes/eas-sync/wbxml"

// Code pages used by the 12.0 command set.
const (
	pageAirSync     = 0x00
	pageEmail       = 0x02
	pageMove        = 0x05
	pageFolder      = 0x07
	pagePing        = 0x0D
	pageProvision   = 0x0E
	pageAirSyncBase = 0x11
)

// AirSync.
const (
	tagSync            wbxml.Tag = pageAirSync<<wbxml.PageShift | 0x05
	tagResponses       wbxml.Tag = pageAirSync<<wbxml.PageShift | 0x06
	tagAdd             wbxml.Tag = pageAirSync<<wbxml.PageShift | 0x07
	tagChange          wbxml.Tag = pageAirSync<<wbxml.PageShift | 0x08
	tagDelete          wbxml.Tag = pageAirSync<<wbxml.PageShift | 0x09
	tagFetch           wbxml.Tag = pageAirSync<<wbxml.PageShift | 0x0A
	tagSyncKey         wbxml.Tag = pageAirSync<<wbxml.PageShift | 0x0B
	tagClientID        wbxml.Tag = pageAirSync<<wbxml.PageShift | 0x0C
	tagServerID        wbxml.Tag = pageAirSync<<wbxml.PageShift | 0x0D
	tagStatus          wbxml.Tag = pageAirSync<<wbxml.PageShift | 0x0E
	tagCollection      wbxml.Tag = pageAirSync<<wbxml.PageShift | 0x0F
	tagClass           wbxml.Tag = pageAirSync<<wbxml.PageShift | 0x10
	tagCollectionID    wbxml.Tag = pageAirSync<<wbxml.PageShift | 0x12
	tagGetChanges      wbxml.Tag = pageAirSync<<wbxml.PageShift | 0x13
	tagMoreAvailable   wbxml.Tag = pageAirSync<<wbxml.PageShift | 0x14
	tagWindowSize      wbxml.Tag = pageAirSync<<wbxml.PageShift | 0x15
	tagCommands        wbxml.Tag = pageAirSync<<wbxml.PageShift | 0x16
	tagOptions         wbxml.Tag = pageAirSync<<wbxml.PageShift | 0x17
	tagFilterType      wbxml.Tag = pageAirSync<<wbxml.PageShift | 0x18
	tagCollections     wbxml.Tag = pageAirSync<<wbxml.PageShift | 0x1C
	tagApplicationData wbxml.Tag = pageAirSync<<wbxml.PageShift | 0x1D
	tagDeletesAsMoves  wbxml.Tag = pageAirSync<<wbxml.PageShift | 0x1E
	tagMIMESupport     wbxml.Tag = pageAirSync<<wbxml.PageShift | 0x22
	tagMIMETruncation  wbxml.Tag = pageAirSync<<wbxml.PageShift | 0x23
)

// Email.
const (
	tagEmailDateReceived wbxml.Tag = pageEmail<<wbxml.PageShift | 0x0F
	tagEmailDisplayTo    wbxml.Tag = pageEmail<<wbxml.PageShift | 0x11
	tagEmailImportance   wbxml.Tag = pageEmail<<wbxml.PageShift | 0x12
	tagEmailMessageClass wbxml.Tag = pageEmail<<wbxml.PageShift | 0x13
	tagEmailSubject      wbxml.Tag = pageEmail<<wbxml.PageShift | 0x14
	tagEmailRead         wbxml.Tag = pageEmail<<wbxml.PageShift | 0x15
	tagEmailTo           wbxml.Tag = pageEmail<<wbxml.PageShift | 0x16
	tagEmailCc           wbxml.Tag = pageEmail<<wbxml.PageShift | 0x17
	tagEmailFrom         wbxml.Tag = pageEmail<<wbxml.PageShift | 0x18
	tagEmailReplyTo      wbxml.Tag = pageEmail<<wbxml.PageShift | 0x19
	tagEmailThreadTopic  wbxml.Tag = pageEmail<<wbxml.PageShift | 0x35
	tagEmailInternetCPID wbxml.Tag = pageEmail<<wbxml.PageShift | 0x39
	tagEmailFlag         wbxml.Tag = pageEmail<<wbxml.PageShift | 0x3A
	tagEmailFlagStatus   wbxml.Tag = pageEmail<<wbxml.PageShift | 0x3B
	tagEmailContentClass wbxml.Tag = pageEmail<<wbxml.PageShift | 0x3C
	tagEmailFlagType     wbxml.Tag = pageEmail<<wbxml.PageShift | 0x3D
)

// Move.
const (
	tagMoveItems  wbxml.Tag = pageMove<<wbxml.PageShift | 0x05
	tagMove       wbxml.Tag = pageMove<<wbxml.PageShift | 0x06
	tagSrcMsgID   wbxml.Tag = pageMove<<wbxml.PageShift | 0x07
	tagSrcFldID   wbxml.Tag = pageMove<<wbxml.PageShift | 0x08
	tagDstFldID   wbxml.Tag = pageMove<<wbxml.PageShift | 0x09
	tagMoveResult wbxml.Tag = pageMove<<wbxml.PageShift | 0x0A
	tagMoveStatus wbxml.Tag = pageMove<<wbxml.PageShift | 0x0B
	tagDstMsgID   wbxml.Tag = pageMove<<wbxml.PageShift | 0x0C
)

// FolderHierarchy.
const (
	tagFolderDisplayName wbxml.Tag = pageFolder<<wbxml.PageShift | 0x07
	tagFolderServerID    wbxml.Tag = pageFolder<<wbxml.PageShift | 0x08
	tagFolderParentID    wbxml.Tag = pageFolder<<wbxml.PageShift | 0x09
	tagFolderType        wbxml.Tag = pageFolder<<wbxml.PageShift | 0x0A
	tagFolderStatus      wbxml.Tag = pageFolder<<wbxml.PageShift | 0x0C
	tagFolderChanges     wbxml.Tag = pageFolder<<wbxml.PageShift | 0x0E
	tagFolderAdd         wbxml.Tag = pageFolder<<wbxml.PageShift | 0x0F
	tagFolderDelete      wbxml.Tag = pageFolder<<wbxml.PageShift | 0x10
	tagFolderUpdate      wbxml.Tag = pageFolder<<wbxml.PageShift | 0x11
	tagFolderSyncKey     wbxml.Tag = pageFolder<<wbxml.PageShift | 0x12
	tagFolderSync        wbxml.Tag = pageFolder<<wbxml.PageShift | 0x16
	tagFolderCount       wbxml.Tag = pageFolder<<wbxml.PageShift | 0x17
)

// Ping.
const (
	tagPing              wbxml.Tag = pagePing<<wbxml.PageShift | 0x05
	tagPingStatus        wbxml.Tag = pagePing<<wbxml.PageShift | 0x07
	tagPingHeartbeat     wbxml.Tag = pagePing<<wbxml.PageShift | 0x08
	tagPingFolders       wbxml.Tag = pagePing<<wbxml.PageShift | 0x09
	tagPingFolder        wbxml.Tag = pagePing<<wbxml.PageShift | 0x0A
	tagPingID            wbxml.Tag = pagePing<<wbxml.PageShift | 0x0B
	tagPingClass         wbxml.Tag = pagePing<<wbxml.PageShift | 0x0C
	tagPingMaxFolders    wbxml.Tag = pagePing<<wbxml.PageShift | 0x0D
)

// Provision.
const (
	tagProvision                   wbxml.Tag = pageProvision<<wbxml.PageShift | 0x05
	tagPolicies                    wbxml.Tag = pageProvision<<wbxml.PageShift | 0x06
	tagPolicy                      wbxml.Tag = pageProvision<<wbxml.PageShift | 0x07
	tagPolicyType                  wbxml.Tag = pageProvision<<wbxml.PageShift | 0x08
	tagPolicyKey                   wbxml.Tag = pageProvision<<wbxml.PageShift | 0x09
	tagPolicyData                  wbxml.Tag = pageProvision<<wbxml.PageShift | 0x0A
	tagProvisionStatus             wbxml.Tag = pageProvision<<wbxml.PageShift | 0x0B
	tagRemoteWipe                  wbxml.Tag = pageProvision<<wbxml.PageShift | 0x0C
	tagEASProvisionDoc             wbxml.Tag = pageProvision<<wbxml.PageShift | 0x0D
	tagDevicePasswordEnabled       wbxml.Tag = pageProvision<<wbxml.PageShift | 0x0E
	tagAttachmentsEnabled          wbxml.Tag = pageProvision<<wbxml.PageShift | 0x13
	tagMinDevicePasswordLength     wbxml.Tag = pageProvision<<wbxml.PageShift | 0x14
	tagMaxInactivityTimeDeviceLock wbxml.Tag = pageProvision<<wbxml.PageShift | 0x15
	tagMaxAttachmentSize           wbxml.Tag = pageProvision<<wbxml.PageShift | 0x17
	tagAllowSimpleDevicePassword   wbxml.Tag = pageProvision<<wbxml.PageShift | 0x18
	tagRequireDeviceEncryption     wbxml.Tag = pageProvision<<wbxml.PageShift | 0x1D
)

// AirSyncBase.
const (
	tagBodyPreference    wbxml.Tag = pageAirSyncBase<<wbxml.PageShift | 0x05
	tagBodyType          wbxml.Tag = pageAirSyncBase<<wbxml.PageShift | 0x06
	tagTruncationSize    wbxml.Tag = pageAirSyncBase<<wbxml.PageShift | 0x07
	tagBody              wbxml.Tag = pageAirSyncBase<<wbxml.PageShift | 0x0A
	tagBodyData          wbxml.Tag = pageAirSyncBase<<wbxml.PageShift | 0x0B
	tagEstimatedDataSize wbxml.Tag = pageAirSyncBase<<wbxml.PageShift | 0x0C
	tagTruncated         wbxml.Tag = pageAirSyncBase<<wbxml.PageShift | 0x0D
	tagNativeBodyType    wbxml.Tag = pageAirSyncBase<<wbxml.PageShift | 0x16
)
