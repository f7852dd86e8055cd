package eas

import "github.com/alexjbarnes/eas-sync/wbxml"

// Status codes shared by several commands.
const (
	StatusSuccess = 1

	// syncStatusInvalidKey is returned by Sync when the client's cursor
	// is unknown to the server.
	syncStatusInvalidKey = 3
	// folderSyncStatusInvalidKey is the FolderSync equivalent.
	folderSyncStatusInvalidKey = 9
	// moveStatusSuccess is the per-item success status of MoveItems.
	moveStatusSuccess = 3

	pingStatusNoChanges = 1
	pingStatusChanges   = 2
)

const (
	classEmail       = "Email"
	bodyTypeMIME     = 4
	mimeSupportAll   = 2
	flagStatusActive = 2
	flagStatusClear  = 0
)

// --- Provision ---

type Provision struct {
	Status     int
	Policies   *ProvisionPolicies
	RemoteWipe bool
}

type ProvisionPolicies struct {
	Policy *ProvisionPolicy
}

type ProvisionPolicy struct {
	PolicyType string
	PolicyKey  string
	Status     int
	Data       *ProvisionData
}

type ProvisionData struct {
	Document *ProvisionDoc
}

// ProvisionDoc holds the subset of the 12.0 policy document the client
// reports in its logs. Nothing here is enforced.
type ProvisionDoc struct {
	DevicePasswordEnabled       *int
	AllowSimpleDevicePassword   *int
	MinDevicePasswordLength     *int
	MaxInactivityTimeDeviceLock *int
	RequireDeviceEncryption     *int
	AttachmentsEnabled          *int
	MaxAttachmentSize           *int
}

var provisionDocSchema = wbxml.NewSchema("EASProvisionDoc",
	wbxml.IntPtr(tagDevicePasswordEnabled, func(v *ProvisionDoc) **int { return &v.DevicePasswordEnabled }),
	wbxml.IntPtr(tagAllowSimpleDevicePassword, func(v *ProvisionDoc) **int { return &v.AllowSimpleDevicePassword }),
	wbxml.IntPtr(tagMinDevicePasswordLength, func(v *ProvisionDoc) **int { return &v.MinDevicePasswordLength }),
	wbxml.IntPtr(tagMaxInactivityTimeDeviceLock, func(v *ProvisionDoc) **int { return &v.MaxInactivityTimeDeviceLock }),
	wbxml.IntPtr(tagRequireDeviceEncryption, func(v *ProvisionDoc) **int { return &v.RequireDeviceEncryption }),
	wbxml.IntPtr(tagAttachmentsEnabled, func(v *ProvisionDoc) **int { return &v.AttachmentsEnabled }),
	wbxml.IntPtr(tagMaxAttachmentSize, func(v *ProvisionDoc) **int { return &v.MaxAttachmentSize }),
)

var provisionDataSchema = wbxml.NewSchema("Data",
	wbxml.Object(tagEASProvisionDoc, provisionDocSchema, func(v *ProvisionData) **ProvisionDoc { return &v.Document }),
)

var provisionPolicySchema = wbxml.NewSchema("Policy",
	wbxml.String(tagPolicyType, func(v *ProvisionPolicy) *string { return &v.PolicyType }),
	wbxml.String(tagPolicyKey, func(v *ProvisionPolicy) *string { return &v.PolicyKey }),
	wbxml.Int(tagProvisionStatus, func(v *ProvisionPolicy) *int { return &v.Status }),
	wbxml.Object(tagPolicyData, provisionDataSchema, func(v *ProvisionPolicy) **ProvisionData { return &v.Data }),
)

var provisionPoliciesSchema = wbxml.NewSchema("Policies",
	wbxml.Object(tagPolicy, provisionPolicySchema, func(v *ProvisionPolicies) **ProvisionPolicy { return &v.Policy }),
)

var provisionSchema = wbxml.NewSchema("Provision",
	wbxml.Int(tagProvisionStatus, func(v *Provision) *int { return &v.Status }),
	wbxml.Object(tagPolicies, provisionPoliciesSchema, func(v *Provision) **ProvisionPolicies { return &v.Policies }),
	wbxml.Bool(tagRemoteWipe, func(v *Provision) *bool { return &v.RemoteWipe }),
)

var provisionDocument = wbxml.NewDocument(tagProvision, provisionSchema)

// --- FolderSync ---

type FolderSync struct {
	Status  int
	SyncKey string
	Changes *FolderChanges
}

type FolderChanges struct {
	Count  int
	Add    []FolderAdd
	Delete []FolderDelete
	Update []FolderUpdate
}

type FolderAdd struct {
	ServerID    string
	ParentID    string
	DisplayName string
	Type        int
}

type FolderDelete struct {
	ServerID string
}

type FolderUpdate struct {
	ServerID    string
	ParentID    string
	DisplayName string
	Type        int
}

var folderAddSchema = wbxml.NewSchema("Add",
	wbxml.String(tagFolderServerID, func(v *FolderAdd) *string { return &v.ServerID }),
	wbxml.String(tagFolderParentID, func(v *FolderAdd) *string { return &v.ParentID }),
	wbxml.String(tagFolderDisplayName, func(v *FolderAdd) *string { return &v.DisplayName }),
	wbxml.Int(tagFolderType, func(v *FolderAdd) *int { return &v.Type }),
)

var folderDeleteSchema = wbxml.NewSchema("Delete",
	wbxml.String(tagFolderServerID, func(v *FolderDelete) *string { return &v.ServerID }),
)

var folderUpdateSchema = wbxml.NewSchema("Update",
	wbxml.String(tagFolderServerID, func(v *FolderUpdate) *string { return &v.ServerID }),
	wbxml.String(tagFolderParentID, func(v *FolderUpdate) *string { return &v.ParentID }),
	wbxml.String(tagFolderDisplayName, func(v *FolderUpdate) *string { return &v.DisplayName }),
	wbxml.Int(tagFolderType, func(v *FolderUpdate) *int { return &v.Type }),
)

var folderChangesSchema = wbxml.NewSchema("Changes",
	wbxml.Int(tagFolderCount, func(v *FolderChanges) *int { return &v.Count }),
	wbxml.List(tagFolderAdd, folderAddSchema, func(v *FolderChanges) *[]FolderAdd { return &v.Add }),
	wbxml.List(tagFolderDelete, folderDeleteSchema, func(v *FolderChanges) *[]FolderDelete { return &v.Delete }),
	wbxml.List(tagFolderUpdate, folderUpdateSchema, func(v *FolderChanges) *[]FolderUpdate { return &v.Update }),
)

var folderSyncSchema = wbxml.NewSchema("FolderSync",
	wbxml.Int(tagFolderStatus, func(v *FolderSync) *int { return &v.Status }),
	wbxml.String(tagFolderSyncKey, func(v *FolderSync) *string { return &v.SyncKey }),
	wbxml.Object(tagFolderChanges, folderChangesSchema, func(v *FolderSync) **FolderChanges { return &v.Changes }),
)

var folderSyncDocument = wbxml.NewDocument(tagFolderSync, folderSyncSchema)

// --- Sync ---

type Sync struct {
	Status      int
	Collections *SyncCollections
}

type SyncCollections struct {
	Collection []SyncCollection
}

type SyncCollection struct {
	Class          string
	SyncKey        string
	CollectionID   string
	Status         int
	DeletesAsMoves *int
	GetChanges     *int
	WindowSize     int
	Options        *SyncOptions
	MoreAvailable  bool
	Commands       *SyncCommands
	Responses      *SyncResponses
}

type SyncOptions struct {
	FilterType     *int
	BodyPreference *BodyPreference
	MIMESupport    *int
	MIMETruncation *int
}

type BodyPreference struct {
	Type           int
	TruncationSize int
}

type SyncCommands struct {
	Add    []SyncItem
	Change []SyncItem
	Delete []SyncItem
	Fetch  []SyncItem
}

type SyncResponses struct {
	Add    []SyncItem
	Change []SyncItem
	Fetch  []SyncItem
}

type SyncItem struct {
	ClientID        string
	ServerID        string
	Status          int
	ApplicationData *ApplicationData
}

// ApplicationData is the email payload of a sync item.
type ApplicationData struct {
	To             string
	Cc             string
	From           string
	Subject        string
	ReplyTo        string
	DateReceived   string
	DisplayTo      string
	ThreadTopic    string
	Importance     *int
	Read           *int
	Body           *Body
	MessageClass   string
	InternetCPID   string
	Flag           *EmailFlag
	ContentClass   string
	NativeBodyType int
}

type Body struct {
	Type              int
	EstimatedDataSize int
	Truncated         *int
	Data              string
}

type EmailFlag struct {
	FlagStatus *int
	FlagType   string
}

var bodyPreferenceSchema = wbxml.NewSchema("BodyPreference",
	wbxml.Int(tagBodyType, func(v *BodyPreference) *int { return &v.Type }),
	wbxml.Int(tagTruncationSize, func(v *BodyPreference) *int { return &v.TruncationSize }),
)

var syncOptionsSchema = wbxml.NewSchema("Options",
	wbxml.IntPtr(tagFilterType, func(v *SyncOptions) **int { return &v.FilterType }),
	wbxml.Object(tagBodyPreference, bodyPreferenceSchema, func(v *SyncOptions) **BodyPreference { return &v.BodyPreference }),
	wbxml.IntPtr(tagMIMESupport, func(v *SyncOptions) **int { return &v.MIMESupport }),
	wbxml.IntPtr(tagMIMETruncation, func(v *SyncOptions) **int { return &v.MIMETruncation }),
)

var bodySchema = wbxml.NewSchema("Body",
	wbxml.Int(tagBodyType, func(v *Body) *int { return &v.Type }),
	wbxml.Int(tagEstimatedDataSize, func(v *Body) *int { return &v.EstimatedDataSize }),
	wbxml.IntPtr(tagTruncated, func(v *Body) **int { return &v.Truncated }),
	wbxml.String(tagBodyData, func(v *Body) *string { return &v.Data }),
)

var emailFlagSchema = wbxml.NewSchema("Flag",
	wbxml.IntPtr(tagEmailFlagStatus, func(v *EmailFlag) **int { return &v.FlagStatus }),
	wbxml.String(tagEmailFlagType, func(v *EmailFlag) *string { return &v.FlagType }),
)

var applicationDataSchema = wbxml.NewSchema("ApplicationData",
	wbxml.String(tagEmailTo, func(v *ApplicationData) *string { return &v.To }),
	wbxml.String(tagEmailCc, func(v *ApplicationData) *string { return &v.Cc }),
	wbxml.String(tagEmailFrom, func(v *ApplicationData) *string { return &v.From }),
	wbxml.String(tagEmailSubject, func(v *ApplicationData) *string { return &v.Subject }),
	wbxml.String(tagEmailReplyTo, func(v *ApplicationData) *string { return &v.ReplyTo }),
	wbxml.String(tagEmailDateReceived, func(v *ApplicationData) *string { return &v.DateReceived }),
	wbxml.String(tagEmailDisplayTo, func(v *ApplicationData) *string { return &v.DisplayTo }),
	wbxml.String(tagEmailThreadTopic, func(v *ApplicationData) *string { return &v.ThreadTopic }),
	wbxml.IntPtr(tagEmailImportance, func(v *ApplicationData) **int { return &v.Importance }),
	wbxml.IntPtr(tagEmailRead, func(v *ApplicationData) **int { return &v.Read }),
	wbxml.Object(tagBody, bodySchema, func(v *ApplicationData) **Body { return &v.Body }),
	wbxml.String(tagEmailMessageClass, func(v *ApplicationData) *string { return &v.MessageClass }),
	wbxml.String(tagEmailInternetCPID, func(v *ApplicationData) *string { return &v.InternetCPID }),
	wbxml.Object(tagEmailFlag, emailFlagSchema, func(v *ApplicationData) **EmailFlag { return &v.Flag }),
	wbxml.String(tagEmailContentClass, func(v *ApplicationData) *string { return &v.ContentClass }),
	wbxml.Int(tagNativeBodyType, func(v *ApplicationData) *int { return &v.NativeBodyType }),
)

var syncItemSchema = wbxml.NewSchema("Item",
	wbxml.String(tagClientID, func(v *SyncItem) *string { return &v.ClientID }),
	wbxml.String(tagServerID, func(v *SyncItem) *string { return &v.ServerID }),
	wbxml.Int(tagStatus, func(v *SyncItem) *int { return &v.Status }),
	wbxml.Object(tagApplicationData, applicationDataSchema, func(v *SyncItem) **ApplicationData { return &v.ApplicationData }),
)

var syncCommandsSchema = wbxml.NewSchema("Commands",
	wbxml.List(tagAdd, syncItemSchema, func(v *SyncCommands) *[]SyncItem { return &v.Add }),
	wbxml.List(tagChange, syncItemSchema, func(v *SyncCommands) *[]SyncItem { return &v.Change }),
	wbxml.List(tagDelete, syncItemSchema, func(v *SyncCommands) *[]SyncItem { return &v.Delete }),
	wbxml.List(tagFetch, syncItemSchema, func(v *SyncCommands) *[]SyncItem { return &v.Fetch }),
)

var syncResponsesSchema = wbxml.NewSchema("Responses",
	wbxml.List(tagAdd, syncItemSchema, func(v *SyncResponses) *[]SyncItem { return &v.Add }),
	wbxml.List(tagChange, syncItemSchema, func(v *SyncResponses) *[]SyncItem { return &v.Change }),
	wbxml.List(tagFetch, syncItemSchema, func(v *SyncResponses) *[]SyncItem { return &v.Fetch }),
)

var syncCollectionSchema = wbxml.NewSchema("Collection",
	wbxml.String(tagClass, func(v *SyncCollection) *string { return &v.Class }),
	wbxml.String(tagSyncKey, func(v *SyncCollection) *string { return &v.SyncKey }),
	wbxml.String(tagCollectionID, func(v *SyncCollection) *string { return &v.CollectionID }),
	wbxml.Int(tagStatus, func(v *SyncCollection) *int { return &v.Status }),
	wbxml.IntPtr(tagDeletesAsMoves, func(v *SyncCollection) **int { return &v.DeletesAsMoves }),
	wbxml.IntPtr(tagGetChanges, func(v *SyncCollection) **int { return &v.GetChanges }),
	wbxml.Int(tagWindowSize, func(v *SyncCollection) *int { return &v.WindowSize }),
	wbxml.Object(tagOptions, syncOptionsSchema, func(v *SyncCollection) **SyncOptions { return &v.Options }),
	wbxml.Bool(tagMoreAvailable, func(v *SyncCollection) *bool { return &v.MoreAvailable }),
	wbxml.Object(tagCommands, syncCommandsSchema, func(v *SyncCollection) **SyncCommands { return &v.Commands }),
	wbxml.Object(tagResponses, syncResponsesSchema, func(v *SyncCollection) **SyncResponses { return &v.Responses }),
)

var syncCollectionsSchema = wbxml.NewSchema("Collections",
	wbxml.List(tagCollection, syncCollectionSchema, func(v *SyncCollections) *[]SyncCollection { return &v.Collection }),
)

var syncSchema = wbxml.NewSchema("Sync",
	wbxml.Int(tagStatus, func(v *Sync) *int { return &v.Status }),
	wbxml.Object(tagCollections, syncCollectionsSchema, func(v *Sync) **SyncCollections { return &v.Collections }),
)

var syncDocument = wbxml.NewDocument(tagSync, syncSchema)

// --- Ping ---

type PingRequest struct {
	HeartbeatInterval int
	Folders           *PingFolders
}

type PingFolders struct {
	Folder []PingFolder
}

type PingFolder struct {
	ID    string
	Class string
}

type PingResponse struct {
	Status            int
	Folders           *PingChangedFolders
	HeartbeatInterval int
	MaxFolders        int
}

type PingChangedFolders struct {
	Folder []string
}

var pingFolderSchema = wbxml.NewSchema("Folder",
	wbxml.String(tagPingID, func(v *PingFolder) *string { return &v.ID }),
	wbxml.String(tagPingClass, func(v *PingFolder) *string { return &v.Class }),
)

var pingFoldersSchema = wbxml.NewSchema("Folders",
	wbxml.List(tagPingFolder, pingFolderSchema, func(v *PingFolders) *[]PingFolder { return &v.Folder }),
)

var pingRequestSchema = wbxml.NewSchema("Ping",
	wbxml.Int(tagPingHeartbeat, func(v *PingRequest) *int { return &v.HeartbeatInterval }),
	wbxml.Object(tagPingFolders, pingFoldersSchema, func(v *PingRequest) **PingFolders { return &v.Folders }),
)

var pingChangedFoldersSchema = wbxml.NewSchema("Folders",
	wbxml.StringList(tagPingFolder, func(v *PingChangedFolders) *[]string { return &v.Folder }),
)

var pingResponseSchema = wbxml.NewSchema("Ping",
	wbxml.Int(tagPingStatus, func(v *PingResponse) *int { return &v.Status }),
	wbxml.Object(tagPingFolders, pingChangedFoldersSchema, func(v *PingResponse) **PingChangedFolders { return &v.Folders }),
	wbxml.Int(tagPingHeartbeat, func(v *PingResponse) *int { return &v.HeartbeatInterval }),
	wbxml.Int(tagPingMaxFolders, func(v *PingResponse) *int { return &v.MaxFolders }),
)

var (
	pingRequestDocument  = wbxml.NewDocument(tagPing, pingRequestSchema)
	pingResponseDocument = wbxml.NewDocument(tagPing, pingResponseSchema)
)

// --- MoveItems ---

type MoveItems struct {
	Move []Move
}

type Move struct {
	SrcMsgID string
	SrcFldID string
	DstFldID string
}

type MoveItemsResponse struct {
	Response []MoveResponse
}

type MoveResponse struct {
	SrcMsgID string
	Status   int
	DstMsgID string
}

var moveSchema = wbxml.NewSchema("Move",
	wbxml.String(tagSrcMsgID, func(v *Move) *string { return &v.SrcMsgID }),
	wbxml.String(tagSrcFldID, func(v *Move) *string { return &v.SrcFldID }),
	wbxml.String(tagDstFldID, func(v *Move) *string { return &v.DstFldID }),
)

var moveItemsSchema = wbxml.NewSchema("MoveItems",
	wbxml.List(tagMove, moveSchema, func(v *MoveItems) *[]Move { return &v.Move }),
)

var moveResponseSchema = wbxml.NewSchema("Response",
	wbxml.String(tagSrcMsgID, func(v *MoveResponse) *string { return &v.SrcMsgID }),
	wbxml.Int(tagMoveStatus, func(v *MoveResponse) *int { return &v.Status }),
	wbxml.String(tagDstMsgID, func(v *MoveResponse) *string { return &v.DstMsgID }),
)

var moveItemsResponseSchema = wbxml.NewSchema("MoveItems",
	wbxml.List(tagMoveResult, moveResponseSchema, func(v *MoveItemsResponse) *[]MoveResponse { return &v.Response }),
)

var (
	moveItemsDocument         = wbxml.NewDocument(tagMoveItems, moveItemsSchema)
	moveItemsResponseDocument = wbxml.NewDocument(tagMoveItems, moveItemsResponseSchema)
)

func intPtr(n int) *int { return &n }

// collection returns the first collection of a sync response.
func (s *Sync) collection() (*SyncCollection, bool) {
	if s == nil || s.Collections == nil || len(s.Collections.Collection) == 0 {
		return nil, false
	}
	return &s.Collections.Collection[0], true
}
