package config

// Default returns the built-in configuration: the published vintages of each
// source database and where their raw files live. A config.yaml can override
// any of it, which is how new vintages are added without a release.
func Default() Config {
	return Config{
		NEI: SourceConfig{
			NationalURL: "https://gaftp.epa.gov/air/nei/__year__/data_summaries/__version__/Facility-level_by_Pollutant.zip",
			NationalVersion: map[string]string{
				"2011": "2011v2/2011neiv2_facility",
				"2014": "2014v2/2014neiv2_facility",
				"2017": "2017v1/2017neiApr_facility",
			},
			Years: map[string]SourceYear{
				"2011": {Files: []string{"NEI_2011_point_1.parquet", "NEI_2011_point_2.parquet"}},
				"2014": {Files: []string{"NEI_2014_point_1.parquet", "NEI_2014_point_2.parquet"}},
				"2017": {Files: []string{"NEI_2017_point_1.parquet", "NEI_2017_point_2.parquet"}},
				"2018": {Files: []string{"NEI_2018_point_1.parquet", "NEI_2018_point_2.parquet"}},
			},
		},
		EGRID: SourceConfig{
			Years: map[string]SourceYear{
				"2014": {
					DownloadURL: "https://www.epa.gov/sites/production/files/2017-02/egrid2014_data_files.zip",
					FileName:    "eGRID2014_Data_v2.xlsx",
					FileVersion: "v2",
				},
				"2016": {
					DownloadURL: "https://www.epa.gov/sites/production/files/2018-02/egrid2016_data_files.zip",
					FileName:    "egrid2016_data.xlsx",
					FileVersion: "v2",
				},
				"2018": {
					DownloadURL: "https://www.epa.gov/sites/default/files/2020-03/egrid2018_data_v2.xlsx",
					FileName:    "egrid2018_data_v2.xlsx",
					FileVersion: "v2",
				},
				"2019": {
					DownloadURL: "https://www.epa.gov/system/files/documents/2021-02/egrid2019_data.xlsx",
					FileName:    "egrid2019_data.xlsx",
					FileVersion: "v1",
				},
			},
		},
	}
}
