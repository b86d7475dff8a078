package store

// Conventional dimension names.
const (
	DimTime     = "time"
	DimX        = "x"
	DimY        = "y"
	DimLat      = "lat"
	DimLon      = "lon"
	DimCol      = "col"
	DimRow      = "row"
	DimStations = "stations"
	DimCharID   = "char_leng_id"
	DimCharName = "char_leng_name"
)

// Conventional variable names.
const (
	VarTime         = "time"
	VarX            = "x"
	VarY            = "y"
	VarLat          = "lat"
	VarLon          = "lon"
	VarStationID    = "station_id"
	VarStationNames = "station_names"
)

// Variable attribute keys.
const (
	AttrStandardName = "standard_name"
	AttrLongName     = "long_name"
	AttrUnits        = "units"
	AttrAxis         = "axis"
	AttrFillValue    = "_FillValue"
	AttrMissingValue = "missing_value"
	AttrCoordinates  = "coordinates"
	AttrScaleFactor  = "scale_factor"
	AttrAddOffset    = "add_offset"
)

// Global attribute keys.
const (
	AttrConventions         = "Conventions"
	AttrTitle               = "title"
	AttrInstitution         = "institution"
	AttrSource              = "source"
	AttrHistory             = "history"
	AttrReferences          = "references"
	AttrMetadataConventions = "Metadata_Conventions"
	AttrSummary             = "summary"
	AttrDateCreated         = "date_created"
	AttrComment             = "comment"
)

// Conventional attribute values.
const (
	StandardNameY      = "projection_y_coordinate"
	StandardNameX      = "projection_x_coordinate"
	StandardNameLat    = "latitude"
	StandardNameLon    = "longitude"
	LongNameYWGS84     = "y coordinate according to WGS 1984"
	LongNameXWGS84     = "x coordinate according to WGS 1984"
	LongNameYTWD97     = "y coordinate according to TWD 1997"
	LongNameXTWD97     = "x coordinate according to TWD 1997"
	UnitsTimeMinutes   = "minutes since 1970-01-01 00:00:00.0 +0000"
	UnitsTimeHours     = "hours since 1970-01-01 00:00:00.0 +0000"
	UnitsDegreesNorth  = "degrees_north"
	UnitsDegreesEast   = "degrees_east"
	UnitsMeter         = "m"
	AxisX              = "X"
	AxisY              = "Y"
	AxisZ              = "Z"
	AxisTime           = "T"
	MissingCoordinates = 9.96921e36
)

// Multipliers converting stored time values to epoch milliseconds, for Times.
const (
	TimeFactorMillis int64 = 1
	TimeFactorSecond int64 = 1000
	TimeFactorMinute int64 = 60 * TimeFactorSecond
	TimeFactorHour   int64 = 60 * TimeFactorMinute
)
