// Package loudness implements Stevens' Mark VII procedure for computing the
// perceived loudness of a sonic boom pressure signature.
//
// The procedure windows and zero-pads the signature, takes a one-sided power
// spectrum via FFT, integrates the spectrum into one-third octave frequency
// bands, converts band energies to sound pressure levels, maps those to
// equivalent loudness values against Stevens' equal-sone contours, sums the
// resulting sone values, and applies Stevens' power law to produce a
// perceived level in decibels (PLdB).
//
// References:
//
//	Stevens, S., "Perceived level of noise by Mark VII and decibels (E)",
//	J. Acoust. Soc. Am. 51(2B), 1972.
//	Jackson, G. and Leventhall, H., "Calculation of the perceived level of
//	noise (PLdB) using Stevens' method (Mark VII)", Applied Acoustics 6(1), 1973.
//	Shepherd, K. P. and Sullivan, B. M., "A loudness calculation procedure
//	applied to shaped sonic booms", 1991.
package loudness

// Tables below are Stevens' Mark VII tabulated data.
//
// soneTable maps equivalent loudness 1..140 dB (index i is i+1 dB) to sones.
// summationFactors pairs with summationSones (soneTable[9:104]) to give the
// band summation factor F as a function of the loudest band's sone value.
// bandCenters / bandLowerLimits / bandUpperLimits define the 42 one-third
// octave bands from 1 Hz to 12.5 kHz. The first center is nudged off 1.0
// so the 80 Hz contour remapping never divides by log10(1).

var soneTable = []float64{
	0.078, 0.087, 0.097, 0.107, 0.118,
	0.129, 0.141, 0.153, 0.166, 0.181,
	0.196, 0.212, 0.230, 0.248, 0.269,
	0.290, 0.314, 0.339, 0.367, 0.396,
	0.428, 0.463, 0.500, 0.540, 0.583,
	0.630, 0.680, 0.735, 0.794, 0.857,
	0.926, 1.000, 1.080, 1.170, 1.260,
	1.360, 1.470, 1.590, 1.710, 1.850,
	2.000, 2.160, 2.330, 2.520, 2.720,
	2.940, 3.180, 3.430, 3.700, 4.000,
	4.320, 4.670, 5.040, 5.440, 5.880,
	6.350, 6.860, 7.410, 8.000, 8.640,
	9.330, 10.10, 10.90, 11.80, 12.70,
	13.70, 14.80, 16.00, 17.30, 18.70,
	20.20, 21.80, 23.50, 25.40, 27.40,
	29.60, 32.00, 34.60, 37.30, 40.30,
	43.50, 47.00, 50.80, 54.90, 59.30,
	64.00, 69.10, 74.70, 80.60, 87.10,
	94.10, 102.0, 110.0, 119.0, 128.0,
	138.0, 149.0, 161.0, 174.0, 188.0,
	203.0, 219.0, 237.0, 256.0, 276.0,
	299.0, 323.0, 348.0, 376.0, 406.0,
	439.0, 474.0, 512.0, 553.0, 597.0,
	645.0, 697.0, 752.0, 813.0, 878.0,
	948.0, 1024, 1106, 1194, 1290,
	1393, 1505, 1625, 1756, 1896,
	2048, 2212, 2389, 2580, 2787,
	3010, 3251, 3511, 3792, 4096,
}

var summationFactors = []float64{
	0.100, 0.122, 0.140, 0.158, 0.174,
	0.187, 0.200, 0.212, 0.222, 0.232,
	0.241, 0.250, 0.259, 0.267, 0.274,
	0.281, 0.287, 0.293, 0.298, 0.303,
	0.308, 0.312, 0.316, 0.319, 0.320,
	0.322, 0.322, 0.320, 0.319, 0.317,
	0.314, 0.311, 0.308, 0.304, 0.300,
	0.296, 0.292, 0.288, 0.284, 0.279,
	0.275, 0.270, 0.266, 0.262, 0.258,
	0.253, 0.248, 0.244, 0.240, 0.235,
	0.230, 0.226, 0.222, 0.217, 0.212,
	0.208, 0.204, 0.200, 0.197, 0.195,
	0.194, 0.193, 0.192, 0.191, 0.190,
	0.190, 0.190, 0.190, 0.190, 0.190,
	0.191, 0.191, 0.192, 0.193, 0.194,
	0.195, 0.197, 0.199, 0.201, 0.203,
	0.205, 0.208, 0.210, 0.212, 0.215,
	0.217, 0.219, 0.221, 0.223, 0.224,
	0.225, 0.226, 0.227, 0.227, 0.227,
}

var bandCenters = []float64{
	1.0000001, 1.25, 1.6, 2.0, 2.5, 3.15,
	4, 5, 6.3, 8, 10, 12.5,
	16, 20, 25, 31.5, 40, 50,
	63, 80, 100, 125, 160, 200,
	250, 315, 400, 500, 630, 800,
	1000, 1250, 1600, 2000, 2500, 3150,
	4000, 5000, 6300, 8000, 10000, 12500,
}

var bandLowerLimits = []float64{
	0.89, 1.12, 1.41, 1.78, 2.24, 2.82,
	3.55, 4.47, 5.62, 7.08, 8.91, 11.2,
	14.1, 17.8, 22.4, 28.2, 35.5, 44.7,
	56.2, 70.8, 89.1, 112, 141, 178,
	224, 282, 355, 447, 562, 708,
	891, 1120, 1410, 1780, 2240, 2820,
	3550, 4470, 5620, 7080, 8910, 11200,
}

var bandUpperLimits = []float64{
	1.12, 1.41, 1.78, 2.24, 2.82, 3.55,
	4.47, 5.62, 7.08, 8.91, 11.2, 14.1,
	17.8, 22.4, 28.2, 35.5, 44.7, 56.2,
	70.8, 89.1, 112, 141, 178, 224,
	282, 355, 447, 562, 708, 891,
	1120, 1410, 1780, 2240, 2820, 3550,
	4470, 5620, 7080, 8910, 11200, 14100,
}

// summationSones is the abscissa for summationFactors lookups.
var summationSones = soneTable[9:104]
