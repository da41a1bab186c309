package nasne

// DeviceIdentity is the answer of /status/boxNameGet. Name is the label the owner gave the device.
type DeviceIdentity struct {
	ErrorCode int
	Name      string
}

// StorageStatus is the answer of /status/HDDInfoGet for the internal disk (id=0).
type StorageStatus struct {
	ErrorCode int
	HDD       HDDInfo
}

// HDDInfo describes a disk of the device. Only the volume sizes are exported as metrics.
type HDDInfo struct {
	TotalVolumeSize uint64
	FreeVolumeSize  uint64
	UsedVolumeSize  uint64
	SerialNumber    string
	ID              uint32
	InternalFlag    uint32
	MountStatus     uint32
	RegisterFlag    uint32
	Format          string
	Name            string
	VendorID        string
	ProductID       string
}

// The wire types use pointers so that a missing field can be told apart from a zero value.

type boxNameResponse struct {
	ErrorCode *int    `json:"errorcode" validate:"required"`
	Name      *string `json:"name" validate:"required"`
}

func (r boxNameResponse) toIdentity() DeviceIdentity {
	return DeviceIdentity{
		ErrorCode: *r.ErrorCode,
		Name:      *r.Name,
	}
}

type hddInfoResponse struct {
	ErrorCode *int     `json:"errorcode" validate:"required"`
	HDD       *hddInfo `json:"HDD" validate:"required"`
}

type hddInfo struct {
	TotalVolumeSize *uint64 `json:"totalVolumeSize" validate:"required"`
	FreeVolumeSize  *uint64 `json:"freeVolumeSize" validate:"required"`
	UsedVolumeSize  *uint64 `json:"usedVolumeSize" validate:"required"`
	SerialNumber    *string `json:"serialNumber" validate:"required"`
	ID              *uint32 `json:"id" validate:"required"`
	InternalFlag    *uint32 `json:"internalFlag" validate:"required"`
	MountStatus     *uint32 `json:"mountStatus" validate:"required"`
	RegisterFlag    *uint32 `json:"registerFlag" validate:"required"`
	Format          *string `json:"format" validate:"required"`
	Name            *string `json:"name" validate:"required"`
	VendorID        *string `json:"vendorID" validate:"required"`
	ProductID       *string `json:"productID" validate:"required"`
}

func (r hddInfoResponse) toStorageStatus() StorageStatus {
	return StorageStatus{
		ErrorCode: *r.ErrorCode,
		HDD: HDDInfo{
			TotalVolumeSize: *r.HDD.TotalVolumeSize,
			FreeVolumeSize:  *r.HDD.FreeVolumeSize,
			UsedVolumeSize:  *r.HDD.UsedVolumeSize,
			SerialNumber:    *r.HDD.SerialNumber,
			ID:              *r.HDD.ID,
			InternalFlag:    *r.HDD.InternalFlag,
			MountStatus:     *r.HDD.MountStatus,
			RegisterFlag:    *r.HDD.RegisterFlag,
			Format:          *r.HDD.Format,
			Name:            *r.HDD.Name,
			VendorID:        *r.HDD.VendorID,
			ProductID:       *r.HDD.ProductID,
		},
	}
}
