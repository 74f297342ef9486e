package odata

// AttributeInfo describes a product attribute known to the catalogue: its
// value type, an optional human-readable title, and the collections it
// appears in.
type AttributeInfo struct {
	Type        AttributeType
	Title       string
	Collections []string
}

// Attributes is the registry of known product attributes, keyed by name. It
// mirrors the attribute definitions published by the OData Attributes
// endpoint and doubles as an offline fallback when that endpoint is
// unreachable.
var Attributes = map[string]AttributeInfo{
	"USGScollection": {Type: TypeString, Collections: []string{"LANDSAT-8", "LANDSAT-9"}},
	"acquisitionType": {Type: TypeString, Collections: []string{"SENTINEL-5P"}},
	"authority": {Type: TypeString, Collections: []string{"SENTINEL-6", "SENTINEL-1-RTC", "ENVISAT", "LANDSAT-5", "LANDSAT-7", "LANDSAT-8", "LANDSAT-9"}},
	"baselineCollection": {Type: TypeString, Collections: []string{"SENTINEL-3", "SENTINEL-5P"}},
	"brightCover": {Type: TypeDouble, Collections: []string{"SENTINEL-3"}},
	"card4lSpecification": {Type: TypeString, Collections: []string{"LANDSAT-5", "LANDSAT-7", "LANDSAT-8", "LANDSAT-9"}},
	"card4lSpecificationVersion": {Type: TypeString, Collections: []string{"LANDSAT-5", "LANDSAT-7", "LANDSAT-8", "LANDSAT-9"}},
	"closedSeaCover": {Type: TypeInteger, Collections: []string{"SENTINEL-3"}},
	"cloudCover": {Type: TypeDouble, Title: "Cloud cover percentage (0-100)", Collections: []string{"SENTINEL-2", "SENTINEL-3", "LANDSAT-5", "LANDSAT-7", "LANDSAT-8", "LANDSAT-9"}},
	"cloudCoverLand": {Type: TypeDouble, Collections: []string{"LANDSAT-5", "LANDSAT-7", "LANDSAT-8", "LANDSAT-9"}},
	"coastalCover": {Type: TypeDouble, Collections: []string{"SENTINEL-3"}},
	"collectionCategory": {Type: TypeString, Collections: []string{"LANDSAT-5", "LANDSAT-7", "LANDSAT-8", "LANDSAT-9"}},
	"collectionName": {Type: TypeString, Collections: []string{"LANDSAT-5", "LANDSAT-7"}},
	"collectionNumber": {Type: TypeString, Collections: []string{"LANDSAT-5", "LANDSAT-7", "LANDSAT-8", "LANDSAT-9"}},
	"completionTimeFromAscendingNode": {Type: TypeDouble, Collections: []string{"SENTINEL-1"}},
	"continentalIceCover": {Type: TypeInteger, Collections: []string{"SENTINEL-3"}},
	"coordinates": {Type: TypeString, Collections: []string{"SENTINEL-1", "SENTINEL-2", "SENTINEL-3", "SENTINEL-5P"}},
	"cycleNumber": {Type: TypeInteger, Collections: []string{"SENTINEL-1", "SENTINEL-3", "ENVISAT"}},
	"datastripId": {Type: TypeString, Collections: []string{"SENTINEL-2"}},
	"datatakeID": {Type: TypeInteger, Collections: []string{"SENTINEL-1"}},
	"doi": {Type: TypeString, Collections: []string{"SENTINEL-5P"}},
	"freshInlandWaterCover": {Type: TypeDouble, Collections: []string{"SENTINEL-3"}},
	"geometricRmse": {Type: TypeDouble, Collections: []string{"LANDSAT-5", "LANDSAT-7", "LANDSAT-8", "LANDSAT-9"}},
	"geometricXBias": {Type: TypeDouble, Collections: []string{"LANDSAT-5", "LANDSAT-7", "LANDSAT-8", "LANDSAT-9"}},
	"geometricXStddev": {Type: TypeDouble, Collections: []string{"LANDSAT-5", "LANDSAT-7", "LANDSAT-8", "LANDSAT-9"}},
	"geometricYBias": {Type: TypeDouble, Collections: []string{"LANDSAT-5", "LANDSAT-7", "LANDSAT-8", "LANDSAT-9"}},
	"geometricYStddev": {Type: TypeDouble, Collections: []string{"LANDSAT-5", "LANDSAT-7", "LANDSAT-8", "LANDSAT-9"}},
	"granuleIdentifier": {Type: TypeString, Collections: []string{"SENTINEL-2"}},
	"identifier": {Type: TypeString, Collections: []string{"SENTINEL-5P"}},
	"illuminationZenithAngle": {Type: TypeDouble, Collections: []string{"SENTINEL-2"}},
	"instrumentConfigurationID": {Type: TypeInteger, Collections: []string{"SENTINEL-1"}},
	"instrumentShortName": {Type: TypeString, Collections: []string{"SENTINEL-1", "SENTINEL-2", "SENTINEL-3", "SENTINEL-5P", "SENTINEL-6", "SENTINEL-1-RTC", "ENVISAT", "LANDSAT-5", "LANDSAT-7", "LANDSAT-8", "LANDSAT-9"}},
	"landCover": {Type: TypeDouble, Collections: []string{"SENTINEL-3"}},
	"lastOrbitDirection": {Type: TypeString, Collections: []string{"SENTINEL-3"}},
	"lastOrbitNumber": {Type: TypeInteger, Collections: []string{"SENTINEL-2", "SENTINEL-3"}},
	"lastRelativeOrbitNumber": {Type: TypeInteger, Collections: []string{"SENTINEL-3"}},
	"numberOfBands": {Type: TypeInteger, Collections: []string{"LANDSAT-5", "LANDSAT-7", "LANDSAT-8", "LANDSAT-9"}},
	"offNadir": {Type: TypeDouble, Collections: []string{"LANDSAT-5", "LANDSAT-7", "LANDSAT-8", "LANDSAT-9"}},
	"openOceanCover": {Type: TypeInteger, Collections: []string{"SENTINEL-3"}},
	"operationalMode": {Type: TypeString, Collections: []string{"SENTINEL-1", "SENTINEL-2", "SENTINEL-3", "SENTINEL-6", "SENTINEL-1-RTC", "LANDSAT-5", "LANDSAT-7", "LANDSAT-8", "LANDSAT-9"}},
	"orbitDirection": {Type: TypeString, Title: "Orbit direction (ASCENDING or DESCENDING)", Collections: []string{"SENTINEL-1", "SENTINEL-3", "SENTINEL-1-RTC"}},
	"orbitNumber": {Type: TypeInteger, Title: "Absolute orbit number", Collections: []string{"SENTINEL-1", "SENTINEL-2", "SENTINEL-3", "SENTINEL-5P", "SENTINEL-6", "SENTINEL-1-RTC", "ENVISAT", "LANDSAT-5", "LANDSAT-7", "LANDSAT-8", "LANDSAT-9"}},
	"origin": {Type: TypeString, Collections: []string{"SENTINEL-1", "SENTINEL-2", "SENTINEL-6"}},
	"parentIdentifier": {Type: TypeString, Collections: []string{"SENTINEL-5P"}},
	"pathNumber": {Type: TypeInteger, Collections: []string{"LANDSAT-5", "LANDSAT-7", "LANDSAT-8", "LANDSAT-9"}},
	"phaseNumber": {Type: TypeInteger, Collections: []string{"ENVISAT"}},
	"platformSerialIdentifier": {Type: TypeString, Collections: []string{"SENTINEL-1", "SENTINEL-2", "SENTINEL-3", "SENTINEL-5P", "SENTINEL-6", "SENTINEL-1-RTC"}},
	"platformShortName": {Type: TypeString, Collections: []string{"SENTINEL-1", "SENTINEL-2", "SENTINEL-3", "SENTINEL-5P", "SENTINEL-6", "SENTINEL-1-RTC", "ENVISAT", "LANDSAT-5", "LANDSAT-7", "LANDSAT-8", "LANDSAT-9"}},
	"polarisationChannels": {Type: TypeString, Collections: []string{"SENTINEL-1", "SENTINEL-1-RTC"}},
	"processingBaseline": {Type: TypeString, Collections: []string{"SENTINEL-1", "SENTINEL-2", "SENTINEL-3", "SENTINEL-5P", "SENTINEL-6"}},
	"processingCenter": {Type: TypeString, Collections: []string{"SENTINEL-1", "SENTINEL-2", "SENTINEL-3", "SENTINEL-5P", "SENTINEL-6"}},
	"processingDate": {Type: TypeDateTimeOffset, Collections: []string{"SENTINEL-1", "SENTINEL-2", "SENTINEL-3", "SENTINEL-5P", "SENTINEL-6"}},
	"processingLevel": {Type: TypeString, Title: "Processing level", Collections: []string{"SENTINEL-1", "SENTINEL-2", "SENTINEL-3", "SENTINEL-5P", "SENTINEL-6", "SENTINEL-1-RTC", "ENVISAT", "LANDSAT-5", "LANDSAT-7", "LANDSAT-8", "LANDSAT-9"}},
	"processingMode": {Type: TypeString, Collections: []string{"SENTINEL-5P"}},
	"processorName": {Type: TypeString, Collections: []string{"SENTINEL-1", "SENTINEL-3", "SENTINEL-5P"}},
	"processorVersion": {Type: TypeString, Collections: []string{"SENTINEL-1", "SENTINEL-2", "SENTINEL-3", "SENTINEL-5P", "SENTINEL-6"}},
	"productClass": {Type: TypeString, Collections: []string{"SENTINEL-1", "SENTINEL-5P"}},
	"productComposition": {Type: TypeString, Collections: []string{"SENTINEL-1"}},
	"productConsolidation": {Type: TypeString, Collections: []string{"SENTINEL-1"}},
	"productGeneration": {Type: TypeDateTimeOffset, Collections: []string{"SENTINEL-1"}},
	"productGroupId": {Type: TypeString, Collections: []string{"SENTINEL-2"}},
	"productType": {Type: TypeString, Title: "Product type", Collections: []string{"SENTINEL-1", "SENTINEL-2", "SENTINEL-3", "SENTINEL-5P", "SENTINEL-6", "SENTINEL-1-RTC", "ENVISAT", "LANDSAT-5", "LANDSAT-7", "LANDSAT-8", "LANDSAT-9"}},
	"proj:epsg": {Type: TypeInteger, Collections: []string{"LANDSAT-5", "LANDSAT-7", "LANDSAT-8", "LANDSAT-9"}},
	"projShape": {Type: TypeString, Collections: []string{"LANDSAT-5", "LANDSAT-7", "LANDSAT-8", "LANDSAT-9"}},
	"projTransform": {Type: TypeString, Collections: []string{"LANDSAT-5", "LANDSAT-7", "LANDSAT-8", "LANDSAT-9"}},
	"qualityInfo": {Type: TypeInteger, Collections: []string{"SENTINEL-2"}},
	"qualityStatus": {Type: TypeString, Collections: []string{"SENTINEL-2", "SENTINEL-5P"}},
	"relativeOrbitNumber": {Type: TypeInteger, Title: "Relative orbit number", Collections: []string{"SENTINEL-1", "SENTINEL-2", "SENTINEL-3", "SENTINEL-6", "SENTINEL-1-RTC"}},
	"rowNumber": {Type: TypeInteger, Collections: []string{"LANDSAT-5", "LANDSAT-7", "LANDSAT-8", "LANDSAT-9"}},
	"salineWaterCover": {Type: TypeDouble, Collections: []string{"SENTINEL-3"}},
	"sceneId": {Type: TypeString, Collections: []string{"LANDSAT-5", "LANDSAT-7", "LANDSAT-8", "LANDSAT-9"}},
	"segmentStartTime": {Type: TypeDateTimeOffset, Collections: []string{"SENTINEL-1"}},
	"sliceNumber": {Type: TypeInteger, Collections: []string{"SENTINEL-1"}},
	"sliceProductFlag": {Type: TypeBoolean, Collections: []string{"SENTINEL-1"}},
	"snowOrIceCover": {Type: TypeDouble, Collections: []string{"SENTINEL-3"}},
	"source": {Type: TypeString, Collections: []string{"SENTINEL-6"}},
	"sourceProduct": {Type: TypeString, Collections: []string{"SENTINEL-2"}},
	"sourceProductOriginDate": {Type: TypeString, Collections: []string{"SENTINEL-2"}},
	"spatialResolution": {Type: TypeInteger, Collections: []string{"SENTINEL-6", "SENTINEL-1-RTC", "ENVISAT", "LANDSAT-5", "LANDSAT-7", "LANDSAT-8", "LANDSAT-9"}},
	"startTimeFromAscendingNode": {Type: TypeDouble, Collections: []string{"SENTINEL-1"}},
	"sunAzimuthAngle": {Type: TypeDouble, Collections: []string{"LANDSAT-5", "LANDSAT-7", "LANDSAT-8", "LANDSAT-9"}},
	"sunElevationAngle": {Type: TypeDouble, Collections: []string{"LANDSAT-5", "LANDSAT-7", "LANDSAT-8", "LANDSAT-9"}},
	"swathIdentifier": {Type: TypeString, Collections: []string{"SENTINEL-1"}},
	"tidalRegionCover": {Type: TypeDouble, Collections: []string{"SENTINEL-3"}},
	"tileId": {Type: TypeString, Collections: []string{"SENTINEL-2"}},
	"timeliness": {Type: TypeString, Collections: []string{"SENTINEL-1", "SENTINEL-3", "SENTINEL-6"}},
	"totalSlices": {Type: TypeInteger, Collections: []string{"SENTINEL-1"}},
	"view:sun_azimuth": {Type: TypeDouble, Collections: []string{"LANDSAT-5", "LANDSAT-7", "LANDSAT-8", "LANDSAT-9"}},
	"view:sun_elevation": {Type: TypeDouble, Collections: []string{"LANDSAT-5", "LANDSAT-7", "LANDSAT-8", "LANDSAT-9"}},
	"wrsPath": {Type: TypeString, Collections: []string{"LANDSAT-5", "LANDSAT-7", "LANDSAT-8", "LANDSAT-9"}},
	"wrsRow": {Type: TypeString, Collections: []string{"LANDSAT-5", "LANDSAT-7", "LANDSAT-8", "LANDSAT-9"}},
	"wrsType": {Type: TypeString, Collections: []string{"LANDSAT-5", "LANDSAT-7", "LANDSAT-8", "LANDSAT-9"}},
}
